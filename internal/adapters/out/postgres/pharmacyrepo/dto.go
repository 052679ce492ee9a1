// Package pharmacyrepo persists pharmacies, the insurance plans they accept
// and their product catalog.
package pharmacyrepo

import (
	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/pharmacy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PharmacyDTO is the persisted pharmacy. The license number is unique.
type PharmacyDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name          string            `gorm:"size:255;not null"`
	LicenseNumber string            `gorm:"size:64;uniqueIndex;not null"`
	Address       shared.AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Active        bool              `gorm:"not null;default:true;index"`
	AcceptedPlans []AcceptedPlanDTO `gorm:"foreignKey:PharmacyID;constraint:OnDelete:CASCADE"`
}

// TableName maps pharmacy rows to the "pharmacies" table.
func (PharmacyDTO) TableName() string {
	return "pharmacies"
}

// AcceptedPlanDTO links a pharmacy to an insurance plan it works with.
type AcceptedPlanDTO struct {
	PharmacyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlanID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName maps accepted plans to the "pharmacy_insurance_plans" table.
func (AcceptedPlanDTO) TableName() string {
	return "pharmacy_insurance_plans"
}

// ProductDTO is the persisted product. Version backs optimistic locking and the
// stock check keeps it from going negative.
type ProductDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PharmacyID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name                 string          `gorm:"size:255;not null"`
	Description          string          `gorm:"type:text"`
	Category             string          `gorm:"size:128;index"`
	BasePrice            decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Stock                int             `gorm:"not null;check:stock >= 0"`
	PrescriptionRequired bool            `gorm:"not null"`
	Active               bool            `gorm:"not null;default:true"`
	Version              int64           `gorm:"not null;default:0"`
}

// TableName maps product rows to the "products" table.
func (ProductDTO) TableName() string {
	return "products"
}

func pharmacyFromDomain(p *pharmacy.Pharmacy) PharmacyDTO {
	dto := PharmacyDTO{
		ID:            p.ID().Bytes(),
		Name:          p.Name(),
		LicenseNumber: p.LicenseNumber(),
		Address:       shared.AddressFromDomain(p.Address()),
		Active:        p.IsActive(),
	}
	for _, planID := range p.AcceptedPlans() {
		dto.AcceptedPlans = append(dto.AcceptedPlans, AcceptedPlanDTO{PharmacyID: dto.ID, PlanID: planID.Bytes()})
	}
	return dto
}

func pharmacyToDomain(dto PharmacyDTO) (*pharmacy.Pharmacy, error) {
	id, err := shared.UUIDToDomain(dto.ID)
	if err != nil {
		return nil, err
	}

	address, err := dto.Address.ToDomain()
	if err != nil {
		return nil, err
	}

	plans := make([]kernel.UUID, 0, len(dto.AcceptedPlans))
	for _, accepted := range dto.AcceptedPlans {
		planID, err := shared.UUIDToDomain(accepted.PlanID)
		if err != nil {
			return nil, err
		}
		plans = append(plans, planID)
	}

	return pharmacy.RestorePharmacy(id, dto.Name, dto.LicenseNumber, address, plans, dto.Active)
}

func productFromDomain(p *pharmacy.Product) ProductDTO {
	return ProductDTO{
		ID:                   p.ID().Bytes(),
		PharmacyID:           p.PharmacyID().Bytes(),
		Name:                 p.Name(),
		Description:          p.Description(),
		Category:             p.Category(),
		BasePrice:            p.BasePrice(),
		Stock:                p.Stock(),
		PrescriptionRequired: p.PrescriptionRequired(),
		Active:               p.IsActive(),
		Version:              p.Version(),
	}
}

func productToDomain(dto ProductDTO) (*pharmacy.Product, error) {
	id, err := shared.UUIDToDomain(dto.ID)
	if err != nil {
		return nil, err
	}
	pharmacyID, err := shared.UUIDToDomain(dto.PharmacyID)
	if err != nil {
		return nil, err
	}

	return pharmacy.RestoreProduct(id, pharmacyID, pharmacy.ProductDetails{
		Name:                 dto.Name,
		Description:          dto.Description,
		Category:             dto.Category,
		BasePrice:            dto.BasePrice,
		PrescriptionRequired: dto.PrescriptionRequired,
	}, dto.Stock, dto.Active, dto.Version)
}
