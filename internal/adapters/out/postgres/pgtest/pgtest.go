// Package pgtest starts a throwaway PostgreSQL container for integration
// tests and creates the schema from the repository DTOs.
package pgtest

import (
	"context"
	"time"

	"farmadelivery/internal/adapters/out/postgres/courierrepo"
	"farmadelivery/internal/adapters/out/postgres/customerrepo"
	"farmadelivery/internal/adapters/out/postgres/insurancerepo"
	"farmadelivery/internal/adapters/out/postgres/orderrepo"
	"farmadelivery/internal/adapters/out/postgres/pharmacyrepo"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table in truncation order.
var Tables = []string{
	"order_rejections",
	"order_lines",
	"orders",
	"insurance_discounts",
	"products",
	"pharmacy_insurance_plans",
	"pharmacies",
	"customers",
	"insurance_plans",
	"couriers",
}

// Start runs postgres:15-alpine and returns the container and a GORM
// connection with the full schema migrated.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, dsn, err := Run(ctx)
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return container, nil, err
	}

	if err = Migrate(db); err != nil {
		return container, nil, err
	}
	return container, db, nil
}

// Run starts an empty postgres:15-alpine and returns its DSN.
func Run(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", err
	}
	return container, dsn, nil
}

// Migrate creates the schema from the DTOs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&insurancerepo.PlanDTO{},
		&insurancerepo.DiscountDTO{},
		&pharmacyrepo.PharmacyDTO{},
		&pharmacyrepo.AcceptedPlanDTO{},
		&pharmacyrepo.ProductDTO{},
		&customerrepo.CustomerDTO{},
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.RejectionDTO{},
	)
}

// Truncate empties every table.
func Truncate(db *gorm.DB) error {
	for _, table := range Tables {
		if err := db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			return err
		}
	}
	return nil
}
