package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"farmadelivery/internal/adapters/out/postgres/courierrepo"
	"farmadelivery/internal/adapters/out/postgres/pgtest"
	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.repository = courierrepo.NewGormCourierRepository(suite.db)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_WithTestLocation() {
	ctx := context.Background()
	testLocation, err := kernel.NewCoordinatesPtr(-34.6037, -58.3816)
	suite.Require().NoError(err)
	c, err := courier.NewCourier(kernel.NewUUID(), "Martín Gómez", courier.Bicycle, testLocation)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal("Martín Gómez", got.Name())
	suite.Equal(courier.Bicycle, got.Vehicle())
	suite.True(got.IsActive())
	suite.Nil(got.Location())
	suite.Require().NotNil(got.TestLocation())
	suite.InDelta(-58.3816, got.TestLocation().Lon(), 1e-9)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_StoresLivePosition() {
	ctx := context.Background()
	c, err := courier.NewCourier(kernel.NewUUID(), "Ana Ruiz", courier.Motorcycle, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	reportedAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	position, err := kernel.NewCoordinates(-34.5875, -58.4200)
	suite.Require().NoError(err)
	suite.Require().NoError(c.UpdateLocation(position, reportedAt))
	suite.Require().NoError(suite.repository.Update(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(got.Location())
	suite.InDelta(-34.5875, got.Location().Lat(), 1e-9)
	suite.Require().NotNil(got.LocationUpdatedAt())
	suite.True(reportedAt.Equal(*got.LocationUpdatedAt()))
	suite.True(got.IsAvailable(reportedAt.Add(9 * time.Minute)))
	suite.False(got.IsAvailable(reportedAt.Add(10 * time.Minute)))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	c, err := courier.NewCourier(kernel.NewUUID(), "Ana Ruiz", courier.Motorcycle, nil)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), c)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
