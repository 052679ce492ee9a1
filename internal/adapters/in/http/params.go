package http

import (
	"farmadelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathID(c echo.Context) (kernel.UUID, error) {
	var id uuid.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, badRequest("invalid format for parameter id", err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func optionalQuery[T any](c echo.Context, name string) (*T, error) {
	var value *T

	err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value)
	if err != nil {
		return nil, badRequest("invalid format for parameter "+name, err)
	}
	return value, nil
}

// bindBody decodes and validates the JSON body into dst.
func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return badRequest("invalid request body", err)
	}
	if err := c.Validate(dst); err != nil {
		return badRequest(err.Error(), err)
	}
	return nil
}
