package pharmacyrepo

import (
	"context"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/pharmacy"
	"farmadelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPharmacyRepository implements PharmacyRepository using GORM.
type GormPharmacyRepository struct {
	db *gorm.DB
}

// NewGormPharmacyRepository creates a new GORM pharmacy repository.
func NewGormPharmacyRepository(db *gorm.DB) *GormPharmacyRepository {
	return &GormPharmacyRepository{
		db: db,
	}
}

// Add inserts the pharmacy with its accepted plans. A license number already
// registered is a Conflict.
func (r *GormPharmacyRepository) Add(ctx context.Context, aggregate *pharmacy.Pharmacy) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := pharmacyFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateWriteError("pharmacy license "+aggregate.LicenseNumber(), err)
	}

	return nil
}

// Update writes the pharmacy row and replaces its accepted plans.
func (r *GormPharmacyRepository) Update(ctx context.Context, aggregate *pharmacy.Pharmacy) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := pharmacyFromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&PharmacyDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                dto.Name,
			"license_number":      dto.LicenseNumber,
			"address_street":      dto.Address.Street,
			"address_number":      dto.Address.Number,
			"address_city":        dto.Address.City,
			"address_province":    dto.Address.Province,
			"address_postal_code": dto.Address.PostalCode,
			"address_country":     dto.Address.Country,
			"address_latitude":    dto.Address.Latitude,
			"address_longitude":   dto.Address.Longitude,
			"active":              dto.Active,
		})
	if result.Error != nil {
		return shared.TranslateWriteError("pharmacy license "+aggregate.LicenseNumber(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pharmacy", aggregate.ID().String())
	}

	if err := db.Where("pharmacy_id = ?", dto.ID).Delete(&AcceptedPlanDTO{}).Error; err != nil {
		return err
	}
	if len(dto.AcceptedPlans) > 0 {
		if err := db.Create(&dto.AcceptedPlans).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a pharmacy with its accepted plans.
func (r *GormPharmacyRepository) Get(ctx context.Context, id kernel.UUID) (*pharmacy.Pharmacy, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PharmacyDTO
	if err := r.db.WithContext(ctx).Preload("AcceptedPlans").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, shared.TranslateReadError("pharmacy", id.String(), err)
	}

	return pharmacyToDomain(dto)
}
