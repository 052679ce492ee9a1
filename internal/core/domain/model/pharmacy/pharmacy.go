package pharmacy

import (
	"errors"
	"strings"

	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"
	"farmadelivery/internal/pkg/guard"
)

var ErrPharmacyIsNotConstructed = errs.NewValueIsRequiredError("pharmacy must be created via NewPharmacy")

// Pharmacy sells products and fulfils orders placed against its catalog.
type Pharmacy struct {
	id            kernel.UUID
	name          string
	licenseNumber string
	address       kernel.Address
	acceptedPlans []kernel.UUID
	active        bool
	guard         guard.ConstructorGuard
}

// NewPharmacy registers an active pharmacy. Duplicate plan ids are collapsed.
func NewPharmacy(
	id kernel.UUID,
	name, licenseNumber string,
	address kernel.Address,
	acceptedPlans []kernel.UUID,
) (*Pharmacy, error) {
	return RestorePharmacy(id, name, licenseNumber, address, acceptedPlans, true)
}

// RestorePharmacy rebuilds a persisted pharmacy with its active flag.
func RestorePharmacy(
	id kernel.UUID,
	name, licenseNumber string,
	address kernel.Address,
	acceptedPlans []kernel.UUID,
	active bool,
) (*Pharmacy, error) {
	p := &Pharmacy{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setLicenseNumber(licenseNumber),
		p.setAddress(address),
		p.setAcceptedPlans(acceptedPlans),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the pharmacy was created through a constructor.
func (p *Pharmacy) Validate() error {
	if p == nil {
		return ErrPharmacyIsNotConstructed
	}
	return p.guard.Validate(ErrPharmacyIsNotConstructed)
}

func (p *Pharmacy) ID() kernel.UUID         { return p.id }
func (p *Pharmacy) Name() string            { return p.name }
func (p *Pharmacy) LicenseNumber() string   { return p.licenseNumber }
func (p *Pharmacy) Address() kernel.Address { return p.address }
func (p *Pharmacy) IsActive() bool          { return p.active }

// Coordinates returns the pharmacy position, nil when the address is not geocoded.
func (p *Pharmacy) Coordinates() *kernel.Coordinates {
	return p.address.Coordinates()
}

// AcceptedPlans returns a copy of the plan IDs the pharmacy accepts.
func (p *Pharmacy) AcceptedPlans() []kernel.UUID {
	plans := make([]kernel.UUID, len(p.acceptedPlans))
	copy(plans, p.acceptedPlans)
	return plans
}

// Accepts reports whether the pharmacy works with the given insurance plan.
func (p *Pharmacy) Accepts(planID kernel.UUID) bool {
	for _, id := range p.acceptedPlans {
		if id.IsEqual(planID) {
			return true
		}
	}
	return false
}

// Relocate replaces the address, typically with a geocoded copy of it.
func (p *Pharmacy) Relocate(address kernel.Address) error {
	return p.setAddress(address)
}

func (p *Pharmacy) Activate()   { p.active = true }
func (p *Pharmacy) Deactivate() { p.active = false }

func (p *Pharmacy) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Pharmacy) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Pharmacy) setLicenseNumber(license string) error {
	license = strings.TrimSpace(license)
	if license == "" {
		return errs.NewValueIsRequiredError("license number")
	}
	p.licenseNumber = license
	return nil
}

func (p *Pharmacy) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	p.address = address
	return nil
}

func (p *Pharmacy) setAcceptedPlans(plans []kernel.UUID) error {
	unique := make([]kernel.UUID, 0, len(plans))
	seen := make(map[kernel.UUID]struct{}, len(plans))
	for _, id := range plans {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	p.acceptedPlans = unique
	return nil
}
