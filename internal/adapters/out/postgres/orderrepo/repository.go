package orderrepo

import (
	"context"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db: db,
	}
}

// Add inserts the order and its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateWriteError("order "+aggregate.ID().String(), err)
	}

	return nil
}

// Update writes the mutable columns of the order if it is still at the
// version it was read with, and bumps the version. Lines never change after
// checkout and are not rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"courier_id":                dto.CourierID,
			"status":                    dto.Status,
			"notes":                     dto.Notes,
			"prescription_validated_at": dto.PrescriptionValidatedAt,
			"updated_at":                dto.UpdatedAt,
			"delivered_at":              dto.DeliveredAt,
			"version":                   gorm.Expr("version + 1"),
		})

	if err := shared.CheckVersionedUpdate(db, result, &OrderDTO{}, "order", aggregate.ID(), dto.Version); err != nil {
		return err
	}

	return nil
}

// Get retrieves an order with its lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, shared.TranslateReadError("order", id.String(), err)
	}

	return toDomain(dto)
}

// AddRejection records that a courier passed on an order. A repeated
// rejection is a no-op.
func (r *GormOrderRepository) AddRejection(ctx context.Context, rejection order.Rejection) error {
	dto := RejectionDTO{
		OrderID:    rejection.OrderID().Bytes(),
		CourierID:  rejection.CourierID().Bytes(),
		RejectedAt: rejection.RejectedAt(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
