package queries_test

import (
	"context"

	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/services"
	"farmadelivery/internal/pkg/errs"
)

func (suite *QueriesIntegrationTestSuite) nearbyHandler() queries.GetNearbyPharmaciesQueryHandler {
	matcher, err := services.NewProximityMatcher(services.DefaultRadiusKm)
	suite.Require().NoError(err)
	return queries.NewGetNearbyPharmaciesQueryHandler(suite.db, matcher)
}

func (suite *QueriesIntegrationTestSuite) seedNearbyPharmacies(planID kernel.UUID) {
	suite.seedPharmacy("Farmacia Beta", suite.coordinates(beta), true)
	suite.seedPharmacy("Farmacia Gamma", suite.coordinates(olivos), true, planID)
	suite.seedPharmacy("Farmacia Alfa", suite.coordinates(alfa), true, planID)
	suite.seedPharmacy("Farmacia Delta", suite.coordinates(obelisco), false, planID)
	suite.seedPharmacy("Farmacia Eta", nil, true)
}

func (suite *QueriesIntegrationTestSuite) TestGetNearbyPharmacies_RanksWithinDefaultRadius() {
	planID := kernel.NewUUID()
	suite.seedNearbyPharmacies(planID)
	c := suite.seedCustomer(suite.coordinates(obelisco), &planID)

	query, err := queries.NewGetNearbyPharmaciesQuery(suite.actor(c.ID(), kernel.RoleCustomer), nil)
	suite.Require().NoError(err)

	pharmacies, err := suite.nearbyHandler().Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(pharmacies, 2)
	suite.Equal("Farmacia Alfa", pharmacies[0].Name)
	suite.True(pharmacies[0].AcceptsCustomerPlan)
	suite.Require().NotNil(pharmacies[0].DistanceKm)
	suite.InDelta(0.5, *pharmacies[0].DistanceKm, 0.1)

	suite.Equal("Farmacia Beta", pharmacies[1].Name)
	suite.False(pharmacies[1].AcceptsCustomerPlan)
	suite.Require().NotNil(pharmacies[1].DistanceKm)
	suite.Less(*pharmacies[0].DistanceKm, *pharmacies[1].DistanceKm)
}

func (suite *QueriesIntegrationTestSuite) TestGetNearbyPharmacies_CustomRadius() {
	planID := kernel.NewUUID()
	suite.seedNearbyPharmacies(planID)
	c := suite.seedCustomer(suite.coordinates(obelisco), nil)

	radius := 50.0
	query, err := queries.NewGetNearbyPharmaciesQuery(suite.actor(c.ID(), kernel.RoleCustomer), &radius)
	suite.Require().NoError(err)

	pharmacies, err := suite.nearbyHandler().Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(pharmacies, 3)
	suite.Equal("Farmacia Alfa", pharmacies[0].Name)
	suite.Equal("Farmacia Beta", pharmacies[1].Name)
	suite.Equal("Farmacia Gamma", pharmacies[2].Name)
	suite.False(pharmacies[0].AcceptsCustomerPlan, "customer has no plan")
}

func (suite *QueriesIntegrationTestSuite) TestGetNearbyPharmacies_CustomerWithoutCoordinatesSeesAllActive() {
	suite.seedNearbyPharmacies(kernel.NewUUID())
	c := suite.seedCustomer(nil, nil)

	query, err := queries.NewGetNearbyPharmaciesQuery(suite.actor(c.ID(), kernel.RoleCustomer), nil)
	suite.Require().NoError(err)

	pharmacies, err := suite.nearbyHandler().Handle(context.Background(), query)
	suite.Require().NoError(err)

	names := make([]string, 0, len(pharmacies))
	for _, p := range pharmacies {
		names = append(names, p.Name)
		suite.Nil(p.DistanceKm)
	}
	suite.Equal([]string{"Farmacia Alfa", "Farmacia Beta", "Farmacia Eta", "Farmacia Gamma"}, names)
}

func (suite *QueriesIntegrationTestSuite) TestGetNearbyPharmacies_UnknownCustomer() {
	query, err := queries.NewGetNearbyPharmaciesQuery(suite.actor(kernel.NewUUID(), kernel.RoleCustomer), nil)
	suite.Require().NoError(err)

	_, err = suite.nearbyHandler().Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
