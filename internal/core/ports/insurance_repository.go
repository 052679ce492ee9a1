package ports

import (
	"context"

	"farmadelivery/internal/core/domain/model/insurance"
	"farmadelivery/internal/core/domain/model/kernel"
)

// InsuranceRepository stores insurance plans and the per-product discounts
// they grant.
type InsuranceRepository interface {
	// AddPlan fails with a Conflict when the member number is taken.
	AddPlan(ctx context.Context, plan *insurance.Plan) error

	// GetPlan returns the plan or an errs.ObjectNotFoundError.
	GetPlan(ctx context.Context, id kernel.UUID) (*insurance.Plan, error)

	// SaveDiscount inserts the discount or replaces the one stored for the same
	// (product, plan) pair.
	SaveDiscount(ctx context.Context, discount *insurance.Discount) error

	// FindDiscount returns the discount stored for the pair, or an
	// errs.ObjectNotFoundError when there is none.
	FindDiscount(ctx context.Context, productID, planID kernel.UUID) (*insurance.Discount, error)
}
