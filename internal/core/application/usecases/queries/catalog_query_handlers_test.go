package queries_test

import (
	"context"
	"time"

	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/insurance"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/services"
	"farmadelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) Load(ctx context.Context, pharmacyID kernel.UUID) ([]queries.CatalogItem, bool) {
	args := m.Called(ctx, pharmacyID)
	items, _ := args.Get(0).([]queries.CatalogItem)
	return items, args.Bool(1)
}

func (m *MockCatalogCache) Store(ctx context.Context, pharmacyID kernel.UUID, items []queries.CatalogItem) {
	m.Called(ctx, pharmacyID, items)
}

func (suite *QueriesIntegrationTestSuite) TestGetPharmacyCatalog_ListsActiveProductsAndFillsCache() {
	p := suite.seedPharmacy("Farmacia Central", suite.coordinates(obelisco), true)
	suite.seedProduct(p.ID(), "Paracetamol 500mg", 800, true)
	suite.seedProduct(p.ID(), "Ibuprofeno 400mg", 1200, true)
	suite.seedProduct(p.ID(), "Aspirina", 500, false)
	suite.seedProduct(suite.seedPharmacy("Farmacia Norte", nil, true).ID(), "Omeprazol", 900, true)

	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything, p.ID()).Return(nil, false).Once()
	cache.On("Store", mock.Anything, p.ID(), mock.MatchedBy(func(items []queries.CatalogItem) bool {
		return len(items) == 2
	})).Once()

	query, err := queries.NewGetPharmacyCatalogQuery(p.ID())
	suite.Require().NoError(err)
	items, err := queries.NewGetPharmacyCatalogQueryHandler(suite.db, cache).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(items, 2)
	suite.Equal("Ibuprofeno 400mg", items[0].Name)
	suite.True(decimal.NewFromInt(1200).Equal(items[0].BasePrice))
	suite.Equal(10, items[0].Stock)
	suite.Equal("Paracetamol 500mg", items[1].Name)
	cache.AssertExpectations(suite.T())
}

func (suite *QueriesIntegrationTestSuite) TestGetPharmacyCatalog_CacheHitSkipsDatabase() {
	pharmacyID := kernel.NewUUID()
	cached := []queries.CatalogItem{{ProductID: kernel.NewUUID(), Name: "Cached"}}

	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything, pharmacyID).Return(cached, true).Once()

	query, err := queries.NewGetPharmacyCatalogQuery(pharmacyID)
	suite.Require().NoError(err)
	items, err := queries.NewGetPharmacyCatalogQueryHandler(suite.db, cache).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(cached, items)
	cache.AssertNotCalled(suite.T(), "Store", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QueriesIntegrationTestSuite) TestGetPharmacyCatalog_UnknownPharmacy() {
	query, err := queries.NewGetPharmacyCatalogQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetPharmacyCatalogQueryHandler(suite.db, nil).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) quote(customerID, productID kernel.UUID) (queries.GetPriceQuoteQueryResponse, error) {
	query, err := queries.NewGetPriceQuoteQuery(suite.actor(customerID, kernel.RoleCustomer), productID)
	suite.Require().NoError(err)
	return queries.NewGetPriceQuoteQueryHandler(suite.db, services.NewPricingEngine()).Handle(context.Background(), query)
}

func (suite *QueriesIntegrationTestSuite) TestGetPriceQuote() {
	ctx := context.Background()
	p := suite.seedPharmacy("Farmacia Central", suite.coordinates(obelisco), true)
	product := suite.seedProduct(p.ID(), "Amoxicilina 500mg", 1000, true)
	plain := suite.seedProduct(p.ID(), "Paracetamol 500mg", 800, true)

	osde, err := insurance.NewPlan(kernel.NewUUID(), "OSDE", "310", "OSDE-310")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repos().InsuranceRepository().AddPlan(ctx, osde))
	pct := decimal.NewFromInt(40)
	discount, err := insurance.NewDiscount(kernel.NewUUID(), product.ID(), osde.ID(), &pct, nil, true)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repos().InsuranceRepository().SaveDiscount(ctx, discount))

	planID := osde.ID()
	insured := suite.seedCustomer(nil, &planID)
	uninsured := suite.seedCustomer(nil, nil)

	suite.Run("insured customer gets the plan discount", func() {
		q, err := suite.quote(insured.ID(), product.ID())
		suite.Require().NoError(err)
		suite.Require().NotNil(q.PlanID)
		suite.True(q.PlanID.IsEqual(planID))
		suite.True(decimal.NewFromInt(1000).Equal(q.Base))
		suite.True(decimal.NewFromInt(400).Equal(q.Discount))
		suite.True(decimal.NewFromInt(600).Equal(q.Final))
	})

	suite.Run("product without discount", func() {
		q, err := suite.quote(insured.ID(), plain.ID())
		suite.Require().NoError(err)
		suite.True(decimal.NewFromInt(800).Equal(q.Final))
		suite.True(q.Discount.IsZero())
	})

	suite.Run("customer without plan pays base price", func() {
		q, err := suite.quote(uninsured.ID(), product.ID())
		suite.Require().NoError(err)
		suite.Nil(q.PlanID)
		suite.True(decimal.NewFromInt(1000).Equal(q.Final))
	})

	suite.Run("unknown product", func() {
		_, err := suite.quote(insured.ID(), kernel.NewUUID())
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})

	suite.Run("unknown customer", func() {
		_, err := suite.quote(kernel.NewUUID(), product.ID())
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *QueriesIntegrationTestSuite) TestGetPriceQuote_AmbiguousDiscountIsRejected() {
	p := suite.seedPharmacy("Farmacia Central", nil, true)
	product := suite.seedProduct(p.ID(), "Amoxicilina 500mg", 1000, true)
	planID := kernel.NewUUID()
	c := suite.seedCustomer(nil, &planID)

	suite.Require().NoError(suite.db.Exec(`
		INSERT INTO insurance_discounts (id, product_id, plan_id, percentage, flat_amount, active)
		VALUES (?, ?, ?, 10, 50, true)
	`, kernel.NewUUID().Bytes(), product.ID().Bytes(), planID.Bytes()).Error)

	_, err := suite.quote(c.ID(), product.ID())
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *QueriesIntegrationTestSuite) TestGetCouriers_ReportsAvailability() {
	fresh := suite.seedCourier(suite.coordinates(obelisco), nil, now.Add(-5*time.Minute))
	stale := suite.seedCourier(suite.coordinates(alfa), nil, now.Add(-15*time.Minute))
	silent := suite.seedCourier(nil, suite.coordinates(beta), now)
	boundary := suite.seedCourier(suite.coordinates(obelisco), nil, now.Add(-10*time.Minute))

	query, err := queries.NewGetCouriersQuery(suite.actor(kernel.NewUUID(), kernel.RoleAdmin))
	suite.Require().NoError(err)
	couriers, err := queries.NewGetCouriersQueryHandler(suite.db, fixedClock{at: now}).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(couriers, 4)

	byID := make(map[kernel.UUID]queries.GetCouriersQueryResponse, len(couriers))
	for _, c := range couriers {
		byID[c.ID] = c
	}

	suite.True(byID[fresh.ID()].Available)
	suite.Require().NotNil(byID[fresh.ID()].Location)
	suite.False(byID[stale.ID()].Available)
	suite.False(byID[silent.ID()].Available)
	suite.False(byID[boundary.ID()].Available)
	suite.Nil(byID[silent.ID()].Location)
	suite.Nil(byID[silent.ID()].LocationUpdatedAt)
}
