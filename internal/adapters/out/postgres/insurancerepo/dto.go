// Package insurancerepo persists insurance plans and the per-product
// discounts they grant.
package insurancerepo

import (
	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/insurance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanDTO is the persisted insurance plan. The member number is unique.
type PlanDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:128;not null"`
	Variant      string    `gorm:"size:64"`
	MemberNumber string    `gorm:"size:64;uniqueIndex;not null"`
}

// TableName maps plan rows to the "insurance_plans" table.
func (PlanDTO) TableName() string {
	return "insurance_plans"
}

// DiscountDTO stores either a percentage or a flat amount. The pair
// (product_id, plan_id) is unique and both amounts are range checked.
type DiscountDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_discount_product_plan"`
	PlanID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_discount_product_plan"`
	Percentage *decimal.Decimal `gorm:"type:numeric(5,2);check:chk_discount_percentage,percentage > 0 AND percentage <= 100"`
	FlatAmount *decimal.Decimal `gorm:"type:numeric(10,2);check:chk_discount_flat_amount,flat_amount > 0"`
	Active     bool             `gorm:"not null;default:true"`
}

// TableName maps discount rows to the "insurance_discounts" table.
func (DiscountDTO) TableName() string {
	return "insurance_discounts"
}

func planFromDomain(p *insurance.Plan) PlanDTO {
	return PlanDTO{
		ID:           p.ID().Bytes(),
		Name:         p.Name(),
		Variant:      p.Variant(),
		MemberNumber: p.MemberNumber(),
	}
}

func planToDomain(dto PlanDTO) (*insurance.Plan, error) {
	id, err := shared.UUIDToDomain(dto.ID)
	if err != nil {
		return nil, err
	}
	return insurance.RestorePlan(id, dto.Name, dto.Variant, dto.MemberNumber)
}

func discountFromDomain(d *insurance.Discount) DiscountDTO {
	return DiscountDTO{
		ID:         d.ID().Bytes(),
		ProductID:  d.ProductID().Bytes(),
		PlanID:     d.PlanID().Bytes(),
		Percentage: d.Percentage(),
		FlatAmount: d.FlatAmount(),
		Active:     d.IsActive(),
	}
}

func discountToDomain(dto DiscountDTO) (*insurance.Discount, error) {
	id, err := shared.UUIDToDomain(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := shared.UUIDToDomain(dto.ProductID)
	if err != nil {
		return nil, err
	}
	planID, err := shared.UUIDToDomain(dto.PlanID)
	if err != nil {
		return nil, err
	}
	return insurance.RestoreDiscount(id, productID, planID, dto.Percentage, dto.FlatAmount, dto.Active)
}
