package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "farmadelivery/internal/adapters/out/postgres"
	"farmadelivery/internal/adapters/out/postgres/pgtest"
	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/customer"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/domain/model/pharmacy"
	"farmadelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

// Reference points in Buenos Aires. Alfa is about 0.5 km from the Obelisco,
// Beta about 1.2 km and Olivos about 14 km.
var (
	obelisco = [2]float64{-34.6037, -58.3816}
	alfa     = [2]float64{-34.6043, -58.3870}
	beta     = [2]float64{-34.6092, -58.3927}
	olivos   = [2]float64{-34.5100, -58.4900}
)

// QueriesIntegrationTestSuite runs every query handler against a real
// PostgreSQL schema seeded through the repositories.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) repos() ports.UnitOfWork {
	return suite.factory.Create()
}

func (suite *QueriesIntegrationTestSuite) coordinates(point [2]float64) *kernel.Coordinates {
	c, err := kernel.NewCoordinatesPtr(point[0], point[1])
	suite.Require().NoError(err)
	return c
}

func (suite *QueriesIntegrationTestSuite) address(coordinates *kernel.Coordinates) kernel.Address {
	a, err := kernel.NewAddress("Av. Corrientes", "1234", "CABA", "Buenos Aires", "C1043", "", coordinates)
	suite.Require().NoError(err)
	return a
}

func (suite *QueriesIntegrationTestSuite) actor(id kernel.UUID, role kernel.Role) kernel.Actor {
	a, err := kernel.NewActor(id, role)
	suite.Require().NoError(err)
	return a
}

func (suite *QueriesIntegrationTestSuite) seedPharmacy(
	name string,
	coordinates *kernel.Coordinates,
	active bool,
	plans ...kernel.UUID,
) *pharmacy.Pharmacy {
	p, err := pharmacy.RestorePharmacy(kernel.NewUUID(), name, "LIC-"+kernel.NewUUID().String()[:8],
		suite.address(coordinates), plans, active)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repos().PharmacyRepository().Add(context.Background(), p))
	return p
}

func (suite *QueriesIntegrationTestSuite) seedProduct(
	pharmacyID kernel.UUID,
	name string,
	price int64,
	active bool,
) *pharmacy.Product {
	product, err := pharmacy.NewProduct(kernel.NewUUID(), pharmacyID, pharmacy.ProductDetails{
		Name:      name,
		Category:  "Analgésicos",
		BasePrice: decimal.NewFromInt(price),
	}, 10)
	suite.Require().NoError(err)
	if !active {
		product.Deactivate()
	}
	suite.Require().NoError(suite.repos().ProductRepository().Add(context.Background(), product))
	return product
}

func (suite *QueriesIntegrationTestSuite) seedCustomer(coordinates *kernel.Coordinates, planID *kernel.UUID) *customer.Customer {
	affiliate := ""
	if planID != nil {
		affiliate = "AF-0042"
	}
	c, err := customer.NewCustomer(kernel.NewUUID(), "Lucía Pérez", suite.address(coordinates), planID, affiliate)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repos().CustomerRepository().Add(context.Background(), c))
	return c
}

func (suite *QueriesIntegrationTestSuite) seedCourier(live, test *kernel.Coordinates, reportedAt time.Time) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), "Martín", courier.Motorcycle, test)
	suite.Require().NoError(err)
	if live != nil {
		suite.Require().NoError(c.UpdateLocation(*live, reportedAt))
	}
	suite.Require().NoError(suite.repos().CourierRepository().Add(context.Background(), c))
	return c
}

type orderSeed struct {
	status     order.Status
	pharmacyID kernel.UUID
	customerID kernel.UUID
	courierID  *kernel.UUID
	delivery   *kernel.Coordinates
	createdAt  time.Time
}

func (suite *QueriesIntegrationTestSuite) seedOrder(seed orderSeed) *order.Order {
	number, err := order.NewNumber(seed.createdAt)
	suite.Require().NoError(err)
	line, err := order.NewLine(kernel.NewUUID(), "Ibuprofeno 400mg", 2, decimal.NewFromInt(500), decimal.NewFromInt(100))
	suite.Require().NoError(err)
	if seed.customerID == (kernel.UUID{}) {
		seed.customerID = kernel.NewUUID()
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:                  kernel.NewUUID(),
		Number:              number,
		CustomerID:          seed.customerID,
		PharmacyID:          seed.pharmacyID,
		CourierID:           seed.courierID,
		Status:              seed.status,
		PaymentMethod:       order.DebitCard,
		Lines:               []order.Line{line},
		DeliveryAddress:     suite.address(seed.delivery),
		CreatedAt:           seed.createdAt,
		UpdatedAt:           seed.createdAt,
		EstimatedDeliveryAt: seed.createdAt.Add(order.DefaultDeliveryWindow),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repos().OrderRepository().Add(context.Background(), o))
	return o
}

func (suite *QueriesIntegrationTestSuite) ids(summaries []queries.OrderSummary) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
