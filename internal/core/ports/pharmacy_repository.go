package ports

import (
	"context"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/pharmacy"
)

// PharmacyRepository persists pharmacies. Adding a pharmacy whose license
// number is already registered fails with a Conflict.
type PharmacyRepository interface {
	Add(ctx context.Context, pharmacy *pharmacy.Pharmacy) error
	Update(ctx context.Context, pharmacy *pharmacy.Pharmacy) error
	Get(ctx context.Context, id kernel.UUID) (*pharmacy.Pharmacy, error)
}

// ProductRepository persists catalog products. Update uses the same
// optimistic versioning as OrderRepository.Update.
type ProductRepository interface {
	Add(ctx context.Context, product *pharmacy.Product) error
	Update(ctx context.Context, product *pharmacy.Product) error
	Get(ctx context.Context, id kernel.UUID) (*pharmacy.Product, error)
}
