package order

import (
	"strings"
	"time"

	"farmadelivery/internal/pkg/errs"
)

// Prescription is the medical prescription attached to an order for products
// that require one. The file itself lives in external storage; only its
// reference is kept.
type Prescription struct {
	fileRef     string
	notes       string
	validatedAt *time.Time
}

// NewPrescription attaches a prescription file. The file reference is required
// and the prescription starts unvalidated.
func NewPrescription(fileRef, notes string) (*Prescription, error) {
	fileRef = strings.TrimSpace(fileRef)
	if fileRef == "" {
		return nil, errs.NewValueIsRequiredError("prescription file")
	}

	return &Prescription{
		fileRef: fileRef,
		notes:   strings.TrimSpace(notes),
	}, nil
}

// RestorePrescription rebuilds a persisted prescription with its validation
// time.
func RestorePrescription(fileRef, notes string, validatedAt *time.Time) (*Prescription, error) {
	p, err := NewPrescription(fileRef, notes)
	if err != nil {
		return nil, err
	}
	if validatedAt != nil {
		at := validatedAt.UTC()
		p.validatedAt = &at
	}
	return p, nil
}

func (p *Prescription) FileRef() string { return p.fileRef }
func (p *Prescription) Notes() string   { return p.notes }

// ValidatedAt returns when the pharmacy accepted the prescription, or nil.
func (p *Prescription) ValidatedAt() *time.Time {
	if p.validatedAt == nil {
		return nil
	}
	at := *p.validatedAt
	return &at
}

// IsValidated reports whether the pharmacy accepted the prescription.
func (p *Prescription) IsValidated() bool {
	return p.validatedAt != nil
}

func (p *Prescription) markValidated(at time.Time) {
	if p.validatedAt != nil {
		return
	}
	at = at.UTC()
	p.validatedAt = &at
}
