package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"farmadelivery/internal/pkg/errs"
)

const numberPrefix = "FD"

var numberPattern = regexp.MustCompile(`^FD\d{8}[0-9A-F]{6}$`)

// Number is the human readable order reference printed on receipts,
// e.g. FD20260301A1B2C3: prefix, creation date and six random hex digits.
type Number string

// NewNumber generates a number for an order created at createdAt.
func NewNumber(createdAt time.Time) (Number, error) {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}

	return Number(numberPrefix + createdAt.UTC().Format("20060102") + strings.ToUpper(hex.EncodeToString(suffix))), nil
}

// Validate checks the number against the "FD" + date + suffix format.
func (n Number) Validate() error {
	if !numberPattern.MatchString(string(n)) {
		return errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q does not match %s", string(n), numberPattern))
	}
	return nil
}

func (n Number) String() string {
	return string(n)
}
