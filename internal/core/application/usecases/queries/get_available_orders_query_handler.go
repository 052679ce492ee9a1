package queries

import (
	"context"
	"database/sql"

	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the unassigned orders a courier may still
// take. Orders the courier rejected are left out.
//
// Example:
//
//	matcher, _ := services.NewProximityMatcher(2)
//	handler := NewGetAvailableOrdersQueryHandler(db, matcher)
//	query, _ := NewGetAvailableOrdersQuery(actor)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("%d orders waiting\n", len(orders))
type GetAvailableOrdersQueryHandler struct {
	db      *gorm.DB
	matcher services.ProximityMatcher
}

// NewGetAvailableOrdersQueryHandler creates a handler for the courier order feed.
// The matcher supplies the distance and the pickup radius.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB, matcher services.ProximityMatcher) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db, matcher: matcher}
}

// Handle ranks the open orders by distance from the courier. The courier's
// last reported position is used, falling back to its test position; a
// courier with neither, or a deactivated one, sees nothing.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	courierID := query.actor.ID()
	var (
		lat, lon, testLat, testLon sql.NullFloat64
		active                     bool
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude, test_latitude, test_longitude, active
		FROM couriers
		WHERE id = ?
	`, courierID.Bytes()).Row().Scan(&lat, &lon, &testLat, &testLon, &active)
	if err != nil {
		return nil, notFound("courier", courierID, err)
	}

	origin, err := toCoordinates(lat, lon)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		if origin, err = toCoordinates(testLat, testLon); err != nil {
			return nil, err
		}
	}
	if !active || origin == nil {
		return make([]OrderSummary, 0), nil
	}

	rows, err := h.db.WithContext(ctx).Raw(orderSummarySelect+`
		WHERE o.status IN ?
			AND o.courier_id IS NULL
			AND NOT EXISTS (
				SELECT 1 FROM order_rejections r
				WHERE r.order_id = o.id AND r.courier_id = ?
			)
		ORDER BY o.created_at, o.id
	`, []string{order.Ready.String(), order.EnRoute.String()}, courierID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}

	open, err := scanOrderSummaries(rows)
	if err != nil {
		return nil, err
	}

	matches := services.Rank(h.matcher, origin, open)
	available := make([]OrderSummary, 0, len(matches))
	for _, m := range matches {
		summary := m.Candidate
		distance := m.DistanceKm
		summary.DistanceKm = &distance
		available = append(available, summary)
	}
	return available, nil
}
