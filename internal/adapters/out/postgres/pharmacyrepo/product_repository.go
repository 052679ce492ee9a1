package pharmacyrepo

import (
	"context"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/pharmacy"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM. Stock
// changes are versioned so concurrent checkouts cannot oversell.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{
		db: db,
	}
}

// Add inserts the product at its current version.
func (r *GormProductRepository) Add(ctx context.Context, product *pharmacy.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateWriteError("product "+product.ID().String(), err)
	}

	return nil
}

// Update writes the product if it is still at the version it was read with.
func (r *GormProductRepository) Update(ctx context.Context, product *pharmacy.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	db := r.db.WithContext(ctx)
	result := db.Model(&ProductDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"name":                  dto.Name,
			"description":           dto.Description,
			"category":              dto.Category,
			"base_price":            dto.BasePrice,
			"stock":                 dto.Stock,
			"prescription_required": dto.PrescriptionRequired,
			"active":                dto.Active,
			"version":               gorm.Expr("version + 1"),
		})

	if err := shared.CheckVersionedUpdate(db, result, &ProductDTO{}, "product", product.ID(), dto.Version); err != nil {
		return err
	}

	return nil
}

// Get returns the product or an ObjectNotFoundError.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*pharmacy.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, shared.TranslateReadError("product", id.String(), err)
	}

	return productToDomain(dto)
}
