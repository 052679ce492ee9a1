package commands

import (
	"context"

	"farmadelivery/internal/core/domain/model/pharmacy"
	"farmadelivery/internal/core/ports"
)

// CreatePharmacyCommandHandler registers a pharmacy with a geocoded address.
//
// Example:
//
//	handler := NewCreatePharmacyCommandHandler(uowFactory, geocoder)
//	cmd, _ := NewCreatePharmacyCommand(kernel.NewUUID(), "Central", "LIC-1", address, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("pharmacy registration failed: %w", err)
//	}
type CreatePharmacyCommandHandler struct {
	uowFactory UoWFactory
	geocoder   ports.Geocoder
}

// NewCreatePharmacyCommandHandler creates a handler for pharmacy registration.
// Requires a geocoder to fill in missing coordinates.
func NewCreatePharmacyCommandHandler(uowFactory UoWFactory, geocoder ports.Geocoder) *CreatePharmacyCommandHandler {
	return &CreatePharmacyCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

// Handle geocodes first, then persists the pharmacy within a transaction.
// Every accepted plan must exist.
func (h *CreatePharmacyCommandHandler) Handle(ctx context.Context, cmd CreatePharmacyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	address := locate(ctx, h.geocoder, cmd.Address())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	insuranceRepo := uow.InsuranceRepository()
	for _, planID := range cmd.AcceptedPlans() {
		if _, err := insuranceRepo.GetPlan(ctx, planID); err != nil {
			return requireFound("accepted_plans", err)
		}
	}

	p, err := pharmacy.NewPharmacy(
		cmd.PharmacyID(),
		cmd.Name(),
		cmd.LicenseNumber(),
		address,
		cmd.AcceptedPlans(),
	)
	if err != nil {
		return err
	}

	if err = uow.PharmacyRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
