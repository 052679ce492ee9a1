package queries

import (
	"context"
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPharmacyCatalogQueryIsNotConstructed = errors.New(
	"GetPharmacyCatalogQuery must be created via NewGetPharmacyCatalogQuery constructor",
)

// GetPharmacyCatalogQuery lists the active products of a pharmacy at their
// base price. Insurance prices are per customer, see GetPriceQuoteQuery.
type GetPharmacyCatalogQuery struct {
	pharmacyID kernel.UUID
	guard      guard.ConstructorGuard
}

// NewGetPharmacyCatalogQuery creates a catalog read. The catalog is public, so
// no actor is needed.
func NewGetPharmacyCatalogQuery(pharmacyID kernel.UUID) (GetPharmacyCatalogQuery, error) {
	if err := pharmacyID.Validate(); err != nil {
		return GetPharmacyCatalogQuery{}, err
	}
	return GetPharmacyCatalogQuery{pharmacyID: pharmacyID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPharmacyCatalogQuery) Validate() error {
	return q.guard.Validate(ErrGetPharmacyCatalogQueryIsNotConstructed)
}

// CatalogItem is a product as shown in the catalog.
type CatalogItem struct {
	ProductID            kernel.UUID
	Name                 string
	Description          string
	Category             string
	BasePrice            decimal.Decimal
	Stock                int
	PrescriptionRequired bool
}

// CatalogCache keeps catalog reads between writes. Commands that change
// products invalidate the pharmacy's entry.
type CatalogCache interface {
	Load(ctx context.Context, pharmacyID kernel.UUID) ([]CatalogItem, bool)
	Store(ctx context.Context, pharmacyID kernel.UUID, items []CatalogItem)
}

// NoopCatalogCache never hits.
type NoopCatalogCache struct{}

// Load always misses.
func (NoopCatalogCache) Load(context.Context, kernel.UUID) ([]CatalogItem, bool) { return nil, false }
func (NoopCatalogCache) Store(context.Context, kernel.UUID, []CatalogItem)       {}
