package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it
// run inside the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Calling it after Commit is
	// a no-op, so handlers may always defer it.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CourierRepository() CourierRepository
	PharmacyRepository() PharmacyRepository
	ProductRepository() ProductRepository
	InsuranceRepository() InsuranceRepository
	CustomerRepository() CustomerRepository
}
