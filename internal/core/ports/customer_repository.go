package ports

import (
	"context"

	"farmadelivery/internal/core/domain/model/customer"
	"farmadelivery/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers, their
// delivery address and insurance affiliation.
type CustomerRepository interface {
	// Add persists a new customer.
	Add(ctx context.Context, customer *customer.Customer) error

	// Update overwrites the stored address and affiliation.
	Update(ctx context.Context, customer *customer.Customer) error

	// Get returns the customer or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
