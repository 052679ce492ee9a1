package postgres

import (
	"database/sql"
	"errors"

	"farmadelivery/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

// Migrator applies the embedded SQL migrations.
type Migrator struct {
	db *sql.DB
	m  *migrate.Migrate
}

// NewMigrator opens a dedicated connection to dsn and loads the embedded
// migrations. Close releases both.
func NewMigrator(dsn string) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	driver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Migrator{db: db, m: m}, nil
}

// Up applies every pending migration. It reports whether anything changed.
func (m *Migrator) Up() (bool, error) {
	return changed(m.m.Up())
}

// Down reverts steps migrations, or all of them when steps is not positive.
func (m *Migrator) Down(steps int) (bool, error) {
	if steps > 0 {
		return changed(m.m.Steps(-steps))
	}
	return changed(m.m.Down())
}

// Version returns the current schema version; dirty means a migration failed
// half way.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close releases the migration source and the database connection.
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.m.Close()
	return errors.Join(sourceErr, dbErr)
}

func changed(err error) (bool, error) {
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
