package commands

import (
	"errors"
	"strings"

	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a courier.
//
// Example:
//
//	cmd, err := NewCreateCourierCommand(kernel.NewUUID(), "Martín", courier.Motorcycle, nil)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	name         string
	vehicle      courier.Vehicle
	testLocation *kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a courier.
// Validates that the name is not blank and that the vehicle is known.
func NewCreateCourierCommand(
	courierID kernel.UUID,
	name string,
	vehicle courier.Vehicle,
	testLocation *kernel.Coordinates,
) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
		cmd.setVehicle(vehicle),
		cmd.setTestLocation(testLocation),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID            { return c.courierID }
func (c CreateCourierCommand) Name() string                      { return c.name }
func (c CreateCourierCommand) Vehicle() courier.Vehicle          { return c.vehicle }
func (c CreateCourierCommand) TestLocation() *kernel.Coordinates { return c.testLocation }

func (c *CreateCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.courierID = id
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return courier.ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateCourierCommand) setVehicle(v courier.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	c.vehicle = v
	return nil
}

func (c *CreateCourierCommand) setTestLocation(location *kernel.Coordinates) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	copied := *location
	c.testLocation = &copied
	return nil
}
