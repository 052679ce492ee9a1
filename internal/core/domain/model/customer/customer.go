// Package customer holds the Customer aggregate: the person placing orders,
// their default delivery address and their insurance affiliation.
package customer

import (
	"errors"
	"strings"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError("customer must be created via NewCustomer")

// Customer is a person ordering from pharmacies. The address is where orders
// are delivered unless checkout names another one. A customer affiliated with
// an insurance plan gets the plan's discounts at checkout.
//
// Example:
//
//	c, err := NewCustomer(id, "Lucía", address, &planID, "0012345")
//	if err != nil {
//	    return fmt.Errorf("invalid customer: %w", err)
//	}
//	fmt.Println(c.InsurancePlanID() != nil) // true
type Customer struct {
	id              kernel.UUID
	name            string
	address         kernel.Address
	planID          *kernel.UUID
	affiliateNumber string
	guard           guard.ConstructorGuard
}

// NewCustomer creates a customer. planID is optional; when it is set the
// affiliate number (the customer's card number with the insurer) is required.
func NewCustomer(
	id kernel.UUID,
	name string,
	address kernel.Address,
	planID *kernel.UUID,
	affiliateNumber string,
) (*Customer, error) {
	c := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setAddress(address),
		c.setInsurance(planID, affiliateNumber),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer rebuilds a persisted customer, applying the same rules as
// NewCustomer.
func RestoreCustomer(
	id kernel.UUID,
	name string,
	address kernel.Address,
	planID *kernel.UUID,
	affiliateNumber string,
) (*Customer, error) {
	return NewCustomer(id, name, address, planID, affiliateNumber)
}

// Validate ensures the customer was created through a constructor.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID         { return c.id }
func (c *Customer) Name() string            { return c.name }
func (c *Customer) Address() kernel.Address { return c.address }
func (c *Customer) AffiliateNumber() string { return c.affiliateNumber }

// InsurancePlanID returns the plan the customer is affiliated with, or nil.
func (c *Customer) InsurancePlanID() *kernel.UUID {
	if c.planID == nil {
		return nil
	}
	id := *c.planID
	return &id
}

// Relocate replaces the default delivery address.
func (c *Customer) Relocate(address kernel.Address) error {
	return c.setAddress(address)
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *Customer) setInsurance(planID *kernel.UUID, affiliateNumber string) error {
	affiliateNumber = strings.TrimSpace(affiliateNumber)
	if planID == nil {
		c.planID = nil
		c.affiliateNumber = ""
		return nil
	}

	if err := planID.Validate(); err != nil {
		return err
	}
	if affiliateNumber == "" {
		return errs.NewValueIsRequiredError("affiliate number")
	}

	id := *planID
	c.planID = &id
	c.affiliateNumber = affiliateNumber
	return nil
}
