// Package customerrepo persists customers.
package customerrepo

import (
	"farmadelivery/internal/adapters/out/postgres/shared"
	"farmadelivery/internal/core/domain/model/customer"

	"github.com/google/uuid"
)

// CustomerDTO is the persisted customer with its embedded address.
type CustomerDTO struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name            string            `gorm:"size:255;not null"`
	Address         shared.AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	InsurancePlanID *uuid.UUID        `gorm:"type:uuid;index"`
	AffiliateNumber string            `gorm:"size:64"`
}

// TableName maps customer rows to the "customers" table.
func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:              c.ID().Bytes(),
		Name:            c.Name(),
		Address:         shared.AddressFromDomain(c.Address()),
		InsurancePlanID: shared.OptionalUUIDFromDomain(c.InsurancePlanID()),
		AffiliateNumber: c.AffiliateNumber(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := shared.UUIDToDomain(dto.ID)
	if err != nil {
		return nil, err
	}
	planID, err := shared.OptionalUUIDToDomain(dto.InsurancePlanID)
	if err != nil {
		return nil, err
	}
	address, err := dto.Address.ToDomain()
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(id, dto.Name, address, planID, dto.AffiliateNumber)
}
