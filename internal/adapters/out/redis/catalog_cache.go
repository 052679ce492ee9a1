// Package redis keeps pharmacy catalog reads in Redis between writes.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	keyPrefix  = "catalog:"
	DefaultTTL = 5 * time.Minute
)

type catalogItemDTO struct {
	ProductID            string          `json:"product_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Category             string          `json:"category"`
	BasePrice            decimal.Decimal `json:"base_price"`
	Stock                int             `json:"stock"`
	PrescriptionRequired bool            `json:"prescription_required"`
}

// CatalogCache implements queries.CatalogCache and commands.CatalogInvalidator.
// Redis failures are logged and treated as a miss.
type CatalogCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalogCache creates a cache over client. A non-positive ttl means
// DefaultTTL; a nil logger means slog.Default.
func NewCatalogCache(client goredis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogCache{client: client, ttl: ttl, logger: logger}
}

// NewClient connects to addr and pings it.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func key(pharmacyID kernel.UUID) string {
	return keyPrefix + pharmacyID.String()
}

// Load returns the cached catalog of the pharmacy. A corrupt entry counts as a
// miss.
func (c *CatalogCache) Load(ctx context.Context, pharmacyID kernel.UUID) ([]queries.CatalogItem, bool) {
	raw, err := c.client.Get(ctx, key(pharmacyID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "catalog cache read failed",
			"pharmacy_id", pharmacyID.String(), "error", err)
		return nil, false
	}

	var dtos []catalogItemDTO
	if err = json.Unmarshal(raw, &dtos); err != nil {
		c.logger.WarnContext(ctx, "catalog cache entry is corrupt",
			"pharmacy_id", pharmacyID.String(), "error", err)
		return nil, false
	}

	items := make([]queries.CatalogItem, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromString(dto.ProductID)
		if err != nil {
			return nil, false
		}
		items = append(items, queries.CatalogItem{
			ProductID:            id,
			Name:                 dto.Name,
			Description:          dto.Description,
			Category:             dto.Category,
			BasePrice:            dto.BasePrice,
			Stock:                dto.Stock,
			PrescriptionRequired: dto.PrescriptionRequired,
		})
	}
	return items, true
}

// Store caches the catalog for the configured TTL.
func (c *CatalogCache) Store(ctx context.Context, pharmacyID kernel.UUID, items []queries.CatalogItem) {
	dtos := make([]catalogItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, catalogItemDTO{
			ProductID:            item.ProductID.String(),
			Name:                 item.Name,
			Description:          item.Description,
			Category:             item.Category,
			BasePrice:            item.BasePrice,
			Stock:                item.Stock,
			PrescriptionRequired: item.PrescriptionRequired,
		})
	}

	raw, err := json.Marshal(dtos)
	if err != nil {
		return
	}
	if err = c.client.Set(ctx, key(pharmacyID), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed",
			"pharmacy_id", pharmacyID.String(), "error", err)
	}
}

// Invalidate deletes the pharmacy's entry so the next read goes to the database.
func (c *CatalogCache) Invalidate(ctx context.Context, pharmacyID kernel.UUID) {
	if err := c.client.Del(ctx, key(pharmacyID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache invalidation failed",
			"pharmacy_id", pharmacyID.String(), "error", err)
	}
}
