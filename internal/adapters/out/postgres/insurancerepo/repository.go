package insurancerepo

import (
	"context"

	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/insurance"
	"farmadelivery/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInsuranceRepository implements InsuranceRepository using GORM.
type GormInsuranceRepository struct {
	db *gorm.DB
}

// NewGormInsuranceRepository creates a new GORM insurance repository.
func NewGormInsuranceRepository(db *gorm.DB) *GormInsuranceRepository {
	return &GormInsuranceRepository{db: db}
}

// AddPlan inserts a plan. A member number already in use is a Conflict.
func (r *GormInsuranceRepository) AddPlan(ctx context.Context, plan *insurance.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	dto := planFromDomain(plan)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateWriteError("insurance plan "+plan.MemberNumber(), err)
	}
	return nil
}

// GetPlan returns the plan or an ObjectNotFoundError.
func (r *GormInsuranceRepository) GetPlan(ctx context.Context, id kernel.UUID) (*insurance.Plan, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PlanDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, shared.TranslateReadError("insurance plan", id.String(), err)
	}
	return planToDomain(dto)
}

// SaveDiscount upserts on (product_id, plan_id). The stored id is kept when
// the pair already exists.
func (r *GormInsuranceRepository) SaveDiscount(ctx context.Context, discount *insurance.Discount) error {
	if err := discount.Validate(); err != nil {
		return err
	}

	dto := discountFromDomain(discount)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "plan_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"percentage", "flat_amount", "active"}),
	}).Create(&dto).Error
}

// FindDiscount returns the discount of the pair or an ObjectNotFoundError. A
// stored row breaking the discount rules fails to restore.
func (r *GormInsuranceRepository) FindDiscount(
	ctx context.Context,
	productID, planID kernel.UUID,
) (*insurance.Discount, error) {
	var dto DiscountDTO
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND plan_id = ?", productID.Bytes(), planID.Bytes()).
		First(&dto).Error
	if err != nil {
		return nil, shared.TranslateReadError("insurance discount", productID.String()+"/"+planID.String(), err)
	}
	return discountToDomain(dto)
}
