package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrCreatePharmacyCommandIsNotConstructed = errors.New(
	"CreatePharmacyCommand must be created via NewCreatePharmacyCommand constructor",
)

// CreatePharmacyCommand registers a pharmacy together with the insurance plans
// it accepts.
type CreatePharmacyCommand struct {
	pharmacyID    kernel.UUID
	name          string
	licenseNumber string
	address       kernel.Address
	acceptedPlans []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePharmacyCommand creates a command to register a pharmacy.
func NewCreatePharmacyCommand(
	pharmacyID kernel.UUID,
	name, licenseNumber string,
	address kernel.Address,
	acceptedPlans []kernel.UUID,
) (CreatePharmacyCommand, error) {
	if err := errors.Join(pharmacyID.Validate(), address.Validate()); err != nil {
		return CreatePharmacyCommand{}, err
	}

	return CreatePharmacyCommand{
		pharmacyID:    pharmacyID,
		name:          name,
		licenseNumber: licenseNumber,
		address:       address,
		acceptedPlans: append([]kernel.UUID(nil), acceptedPlans...),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePharmacyCommand) Validate() error {
	return c.guard.Validate(ErrCreatePharmacyCommandIsNotConstructed)
}

func (c CreatePharmacyCommand) PharmacyID() kernel.UUID      { return c.pharmacyID }
func (c CreatePharmacyCommand) Name() string                 { return c.name }
func (c CreatePharmacyCommand) LicenseNumber() string        { return c.licenseNumber }
func (c CreatePharmacyCommand) Address() kernel.Address      { return c.address }
func (c CreatePharmacyCommand) AcceptedPlans() []kernel.UUID { return c.acceptedPlans }
