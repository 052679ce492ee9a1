package queries

import (
	"context"

	"farmadelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPharmacyCatalogQueryHandler reads a pharmacy catalog, serving it from the
// cache when an entry is present.
type GetPharmacyCatalogQueryHandler struct {
	db    *gorm.DB
	cache CatalogCache
}

// NewGetPharmacyCatalogQueryHandler creates a catalog handler. Pass
// NoopCatalogCache to read straight from the database.
func NewGetPharmacyCatalogQueryHandler(db *gorm.DB, cache CatalogCache) GetPharmacyCatalogQueryHandler {
	if cache == nil {
		cache = NoopCatalogCache{}
	}
	return GetPharmacyCatalogQueryHandler{db: db, cache: cache}
}

// Handle returns the active products ordered by name. An unknown pharmacy is
// an ObjectNotFoundError.
func (h GetPharmacyCatalogQueryHandler) Handle(
	ctx context.Context,
	query GetPharmacyCatalogQuery,
) ([]CatalogItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if items, ok := h.cache.Load(ctx, query.pharmacyID); ok {
		return items, nil
	}

	var exists bool
	err := h.db.WithContext(ctx).Raw(
		`SELECT EXISTS (SELECT 1 FROM pharmacies WHERE id = ?)`, query.pharmacyID.Bytes(),
	).Row().Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("pharmacy", query.pharmacyID.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			category,
			base_price,
			stock,
			prescription_required
		FROM products
		WHERE pharmacy_id = ? AND active
		ORDER BY name, id
	`, query.pharmacyID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CatalogItem, 0)
	for rows.Next() {
		var item CatalogItem
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.BasePrice,
			&item.Stock,
			&item.PrescriptionRequired,
		)
		if err != nil {
			return nil, err
		}

		if item.ProductID, err = toUUID(id); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	h.cache.Store(ctx, query.pharmacyID, items)
	return items, nil
}
