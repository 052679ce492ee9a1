package http

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs validator/v10 into echo.Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator with required struct checks enabled.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the `validate` tags of a bound request body.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
