package commands

import (
	"errors"
	"fmt"

	"farmadelivery/internal/pkg/errs"
)

// requireFound turns a missing referenced entity into a validation error: the
// caller sent an id that does not exist, which is bad input rather than a
// missing resource. Other errors pass through.
func requireFound(paramName string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("unknown %s: %w", paramName, err))
	}
	return err
}
