package queries_test

import (
	"context"
	"time"

	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/domain/services"
	"farmadelivery/internal/pkg/errs"
)

func (suite *QueriesIntegrationTestSuite) availableHandler() queries.GetAvailableOrdersQueryHandler {
	matcher, err := services.NewProximityMatcher(2)
	suite.Require().NoError(err)
	return queries.NewGetAvailableOrdersQueryHandler(suite.db, matcher)
}

func (suite *QueriesIntegrationTestSuite) available(courierID kernel.UUID) ([]queries.OrderSummary, error) {
	query, err := queries.NewGetAvailableOrdersQuery(suite.actor(courierID, kernel.RoleCourier))
	suite.Require().NoError(err)
	return suite.availableHandler().Handle(context.Background(), query)
}

func (suite *QueriesIntegrationTestSuite) TestGetAvailableOrders_FiltersAndRanks() {
	ctx := context.Background()
	p := suite.seedPharmacy("Farmacia Central", suite.coordinates(obelisco), true)
	c := suite.seedCourier(suite.coordinates(obelisco), nil, now)
	other := kernel.NewUUID()

	ready := func(point [2]float64, minutes int) *order.Order {
		return suite.seedOrder(orderSeed{
			status:     order.Ready,
			pharmacyID: p.ID(),
			delivery:   suite.coordinates(point),
			createdAt:  now.Add(time.Duration(minutes) * time.Minute),
		})
	}

	farther := ready(beta, -50)
	closest := ready(alfa, -40)
	ready(olivos, -30)
	rejected := ready(alfa, -20)
	suite.seedOrder(orderSeed{
		status: order.Preparing, pharmacyID: p.ID(), delivery: suite.coordinates(alfa), createdAt: now,
	})

	mine, err := rejected.Reject(suite.actor(c.ID(), kernel.RoleCourier), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repos().OrderRepository().AddRejection(ctx, mine))
	theirs, err := farther.Reject(suite.actor(other, kernel.RoleCourier), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repos().OrderRepository().AddRejection(ctx, theirs))

	orders, err := suite.available(c.ID())
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.Equal([]kernel.UUID{closest.ID(), farther.ID()}, suite.ids(orders))
	suite.Equal("Farmacia Central", orders[0].PharmacyName)
	suite.Equal(order.Ready, orders[0].Status)
	suite.True(orders[0].Total.Equal(closest.Total()))
	suite.Require().NotNil(orders[0].DistanceKm)
	suite.LessOrEqual(*orders[1].DistanceKm, 2.0)

	// Another courier still sees the order this courier rejected.
	stranger := suite.seedCourier(suite.coordinates(obelisco), nil, now)
	orders, err = suite.available(stranger.ID())
	suite.Require().NoError(err)
	suite.Contains(suite.ids(orders), rejected.ID())
}

func (suite *QueriesIntegrationTestSuite) TestGetAvailableOrders_UsesTestLocationFallback() {
	p := suite.seedPharmacy("Farmacia Central", suite.coordinates(obelisco), true)
	o := suite.seedOrder(orderSeed{
		status: order.Ready, pharmacyID: p.ID(), delivery: suite.coordinates(alfa), createdAt: now,
	})
	c := suite.seedCourier(nil, suite.coordinates(obelisco), now)

	orders, err := suite.available(c.ID())
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{o.ID()}, suite.ids(orders))
}

func (suite *QueriesIntegrationTestSuite) TestGetAvailableOrders_CourierWithoutLocationSeesNothing() {
	p := suite.seedPharmacy("Farmacia Central", suite.coordinates(obelisco), true)
	suite.seedOrder(orderSeed{
		status: order.Ready, pharmacyID: p.ID(), delivery: suite.coordinates(alfa), createdAt: now,
	})
	c := suite.seedCourier(nil, nil, now)

	orders, err := suite.available(c.ID())
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *QueriesIntegrationTestSuite) TestGetAvailableOrders_UnknownCourier() {
	_, err := suite.available(kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
