package courierrepo

import (
	"context"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{
		db: db,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateWriteError("courier "+aggregate.ID().String(), err)
	}

	return nil
}

// Update overwrites the courier row. Position reports are last-writer-wins, so
// couriers are not versioned.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                dto.Name,
			"vehicle":             dto.Vehicle,
			"active":              dto.Active,
			"latitude":            dto.Latitude,
			"longitude":           dto.Longitude,
			"location_updated_at": dto.LocationUpdatedAt,
			"test_latitude":       dto.TestLatitude,
			"test_longitude":      dto.TestLongitude,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, shared.TranslateReadError("courier", id.String(), err)
	}

	return toDomain(dto)
}
