package order

import (
	"fmt"
	"strings"

	"farmadelivery/internal/pkg/errs"
)

// PaymentMethod is how the customer pays on delivery or in advance. The wire
// names are the constant values.
type PaymentMethod string

const (
	Cash         PaymentMethod = "CASH"
	DebitCard    PaymentMethod = "DEBIT_CARD"
	CreditCard   PaymentMethod = "CREDIT_CARD"
	BankTransfer PaymentMethod = "BANK_TRANSFER"
	MercadoPago  PaymentMethod = "MERCADO_PAGO"
)

// ParsePaymentMethod accepts the wire name in any case.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate rejects methods outside the supported set.
func (m PaymentMethod) Validate() error {
	switch m {
	case Cash, DebitCard, CreditCard, BankTransfer, MercadoPago:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}
