package customerrepo

import (
	"context"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/customer"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add inserts a new customer.
func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateWriteError("customer "+c.ID().String(), err)
	}
	return nil
}

// Update overwrites the customer row. It returns an ObjectNotFoundError when no
// row matched.
func (r *GormCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                dto.Name,
			"address_street":      dto.Address.Street,
			"address_number":      dto.Address.Number,
			"address_city":        dto.Address.City,
			"address_province":    dto.Address.Province,
			"address_postal_code": dto.Address.PostalCode,
			"address_country":     dto.Address.Country,
			"address_latitude":    dto.Address.Latitude,
			"address_longitude":   dto.Address.Longitude,
			"insurance_plan_id":   dto.InsurancePlanID,
			"affiliate_number":    dto.AffiliateNumber,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", c.ID().String())
	}
	return nil
}

// Get returns the customer or an ObjectNotFoundError.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, shared.TranslateReadError("customer", id.String(), err)
	}
	return toDomain(dto)
}
