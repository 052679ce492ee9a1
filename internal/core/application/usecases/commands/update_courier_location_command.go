package commands

import (
	"errors"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand records the position reported by the courier app.
type UpdateCourierLocationCommand struct {
	actor    kernel.Actor
	location kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a position report. Coordinates
// outside the valid latitude and longitude ranges are refused.
func NewUpdateCourierLocationCommand(actor kernel.Actor, lat, lon float64) (UpdateCourierLocationCommand, error) {
	location, err := kernel.NewCoordinates(lat, lon)
	if err = errors.Join(actor.Require("update location", kernel.RoleCourier), err); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		actor:    actor,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

func (c UpdateCourierLocationCommand) Actor() kernel.Actor          { return c.actor }
func (c UpdateCourierLocationCommand) Location() kernel.Coordinates { return c.location }
