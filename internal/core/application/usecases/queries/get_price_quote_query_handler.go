package queries

import (
	"context"
	"database/sql"
	"errors"

	"farmadelivery/internal/core/domain/model/insurance"
	"farmadelivery/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPriceQuoteQueryHandler prices one unit of a product for the calling
// customer.
type GetPriceQuoteQueryHandler struct {
	db      *gorm.DB
	pricing services.PricingEngine
}

// NewGetPriceQuoteQueryHandler creates a quote handler around the pricing engine.
func NewGetPriceQuoteQueryHandler(db *gorm.DB, pricing services.PricingEngine) GetPriceQuoteQueryHandler {
	return GetPriceQuoteQueryHandler{db: db, pricing: pricing}
}

// Handle uses the same pricing as checkout, so the quoted final price is the
// unit price the customer would pay now. An ambiguous or out of range
// discount record fails the quote.
func (h GetPriceQuoteQueryHandler) Handle(
	ctx context.Context,
	query GetPriceQuoteQuery,
) (GetPriceQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPriceQuoteQueryResponse{}, err
	}

	var base decimal.Decimal
	err := h.db.WithContext(ctx).Raw(
		`SELECT base_price FROM products WHERE id = ?`, query.productID.Bytes(),
	).Row().Scan(&base)
	if err != nil {
		return GetPriceQuoteQueryResponse{}, notFound("product", query.productID, err)
	}

	customerID := query.actor.ID()
	var plan uuid.NullUUID
	err = h.db.WithContext(ctx).Raw(
		`SELECT insurance_plan_id FROM customers WHERE id = ?`, customerID.Bytes(),
	).Row().Scan(&plan)
	if err != nil {
		return GetPriceQuoteQueryResponse{}, notFound("customer", customerID, err)
	}
	planID, err := toOptionalUUID(plan)
	if err != nil {
		return GetPriceQuoteQueryResponse{}, err
	}

	var discount *insurance.Discount
	if planID != nil {
		var (
			id                     uuid.UUID
			percentage, flatAmount decimal.NullDecimal
			active                 bool
		)
		err = h.db.WithContext(ctx).Raw(`
			SELECT id, percentage, flat_amount, active
			FROM insurance_discounts
			WHERE product_id = ? AND plan_id = ?
		`, query.productID.Bytes(), planID.Bytes()).Row().Scan(&id, &percentage, &flatAmount, &active)

		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return GetPriceQuoteQueryResponse{}, err
		default:
			discountID, idErr := toUUID(id)
			if idErr != nil {
				return GetPriceQuoteQueryResponse{}, idErr
			}
			discount, err = insurance.RestoreDiscount(discountID, query.productID, *planID,
				nullDecimal(percentage), nullDecimal(flatAmount), active)
			if err != nil {
				return GetPriceQuoteQueryResponse{}, err
			}
		}
	}

	quote, err := h.pricing.Quote(base, planID, discount)
	if err != nil {
		return GetPriceQuoteQueryResponse{}, err
	}

	return GetPriceQuoteQueryResponse{
		ProductID: query.productID,
		PlanID:    planID,
		Base:      quote.Base,
		Discount:  quote.Discount,
		Final:     quote.Final,
	}, nil
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}
