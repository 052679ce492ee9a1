package queries_test

import (
	"context"
	"time"

	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
)

func (suite *QueriesIntegrationTestSuite) TestGetCourierActiveOrders_OnlyEnRouteAssignedToCourier() {
	p := suite.seedPharmacy("Farmacia Central", suite.coordinates(obelisco), true)
	c := suite.seedCourier(suite.coordinates(obelisco), nil, now)
	courierID := c.ID()
	otherCourier := kernel.NewUUID()

	first := suite.seedOrder(orderSeed{
		status: order.EnRoute, pharmacyID: p.ID(), courierID: &courierID,
		delivery: suite.coordinates(alfa), createdAt: now.Add(-2 * time.Hour),
	})
	second := suite.seedOrder(orderSeed{
		status: order.EnRoute, pharmacyID: p.ID(), courierID: &courierID,
		delivery: suite.coordinates(beta), createdAt: now.Add(-time.Hour),
	})
	suite.seedOrder(orderSeed{
		status: order.EnRoute, pharmacyID: p.ID(), courierID: &otherCourier,
		delivery: suite.coordinates(alfa), createdAt: now,
	})
	suite.seedOrder(orderSeed{
		status: order.Delivered, pharmacyID: p.ID(), courierID: &courierID,
		delivery: suite.coordinates(alfa), createdAt: now,
	})

	query, err := queries.NewGetCourierActiveOrdersQuery(suite.actor(courierID, kernel.RoleCourier))
	suite.Require().NoError(err)
	orders, err := queries.NewGetCourierActiveOrdersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal([]kernel.UUID{first.ID(), second.ID()}, suite.ids(orders))
	suite.Require().NotNil(orders[0].CourierID)
	suite.True(orders[0].CourierID.IsEqual(courierID))
	suite.Nil(orders[0].DistanceKm)
}

func (suite *QueriesIntegrationTestSuite) TestGetPharmacyOrders() {
	p := suite.seedPharmacy("Farmacia Central", suite.coordinates(obelisco), true)
	other := suite.seedPharmacy("Farmacia Norte", suite.coordinates(olivos), true)
	courierID := kernel.NewUUID()

	older := suite.seedOrder(orderSeed{
		status: order.Pending, pharmacyID: p.ID(), delivery: suite.coordinates(alfa), createdAt: now.Add(-3 * time.Hour),
	})
	newer := suite.seedOrder(orderSeed{
		status: order.Ready, pharmacyID: p.ID(), delivery: suite.coordinates(alfa), createdAt: now.Add(-time.Hour),
	})
	delivered := suite.seedOrder(orderSeed{
		status: order.Delivered, pharmacyID: p.ID(), courierID: &courierID,
		delivery: suite.coordinates(alfa), createdAt: now.Add(-5 * time.Hour),
	})
	suite.seedOrder(orderSeed{
		status: order.Cancelled, pharmacyID: p.ID(), delivery: suite.coordinates(alfa), createdAt: now,
	})
	suite.seedOrder(orderSeed{
		status: order.Pending, pharmacyID: other.ID(), delivery: suite.coordinates(alfa), createdAt: now,
	})

	handler := queries.NewGetPharmacyOrdersQueryHandler(suite.db)
	actor := suite.actor(p.ID(), kernel.RolePharmacy)

	suite.Run("without filter lists open orders newest first", func() {
		query, err := queries.NewGetPharmacyOrdersQuery(actor, nil)
		suite.Require().NoError(err)

		orders, err := handler.Handle(context.Background(), query)
		suite.Require().NoError(err)
		suite.Equal([]kernel.UUID{newer.ID(), older.ID()}, suite.ids(orders))
		suite.Equal(newer.Number().String(), orders[0].Number)
		suite.Equal(order.DebitCard, orders[0].PaymentMethod)
	})

	suite.Run("with status filter", func() {
		status := order.Delivered
		query, err := queries.NewGetPharmacyOrdersQuery(actor, &status)
		suite.Require().NoError(err)

		orders, err := handler.Handle(context.Background(), query)
		suite.Require().NoError(err)
		suite.Equal([]kernel.UUID{delivered.ID()}, suite.ids(orders))
	})
}
