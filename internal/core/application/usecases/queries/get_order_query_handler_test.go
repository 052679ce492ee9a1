package queries_test

import (
	"context"

	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/pkg/errs"
)

func (suite *QueriesIntegrationTestSuite) TestGetOrder_Visibility() {
	p := suite.seedPharmacy("Farmacia Central", suite.coordinates(obelisco), true)
	customerID := kernel.NewUUID()
	o := suite.seedOrder(orderSeed{
		status: order.Pending, pharmacyID: p.ID(), customerID: customerID,
		delivery: suite.coordinates(alfa), createdAt: now,
	})
	handler := queries.NewGetOrderQueryHandler(suite.factory)

	read := func(actor kernel.Actor, id kernel.UUID) (queries.GetOrderQueryResponse, error) {
		query, err := queries.NewGetOrderQuery(actor, id)
		suite.Require().NoError(err)
		return handler.Handle(context.Background(), query)
	}

	suite.Run("customer reads own order with lines", func() {
		view, err := read(suite.actor(customerID, kernel.RoleCustomer), o.ID())
		suite.Require().NoError(err)
		suite.Equal(o.Number().String(), view.Number)
		suite.Equal(order.Pending, view.Status)
		suite.Require().Len(view.Lines, 1)
		suite.Equal("Ibuprofeno 400mg", view.Lines[0].ProductName)
		suite.True(view.Total.Equal(o.Total()))
		suite.Nil(view.Prescription)
	})

	suite.Run("pharmacy reads its order", func() {
		_, err := read(suite.actor(p.ID(), kernel.RolePharmacy), o.ID())
		suite.Require().NoError(err)
	})

	suite.Run("another customer is forbidden", func() {
		_, err := read(suite.actor(kernel.NewUUID(), kernel.RoleCustomer), o.ID())
		suite.Require().ErrorIs(err, errs.ErrForbidden)
	})

	suite.Run("unassigned courier is forbidden", func() {
		_, err := read(suite.actor(kernel.NewUUID(), kernel.RoleCourier), o.ID())
		suite.Require().ErrorIs(err, errs.ErrForbidden)
	})

	suite.Run("unknown order", func() {
		_, err := read(suite.actor(customerID, kernel.RoleCustomer), kernel.NewUUID())
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}
