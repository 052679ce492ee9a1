package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"farmadelivery/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// SwaggerInstance is the swag registry name the API document is served under.
const SwaggerInstance = "farmadelivery"

// LoadOpenAPI parses and validates the embedded API contract.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// OpenAPIValidator rejects requests that do not match the contract with 400.
// Requests to routes the contract does not describe pass through untouched.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
				return next(c)
			}
			if err != nil {
				return badRequest(err.Error(), err)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return badRequest(validationMessage(err), err)
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return firstLine(err.Error())
	}

	reason := reqErr.Reason
	if reqErr.Err != nil {
		reason = reqErr.Err.Error()
	}
	if reason == "" {
		reason = http.StatusText(http.StatusBadRequest)
	}

	switch {
	case reqErr.Parameter != nil:
		return "invalid parameter " + reqErr.Parameter.Name + ": " + firstLine(reason)
	case reqErr.RequestBody != nil:
		return "invalid request body: " + firstLine(reason)
	default:
		return firstLine(reason)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

type swaggerDoc struct {
	json string
}

// ReadDoc implements swag.Swagger.
func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerSwagger sync.Mutex

// RegisterSwagger publishes doc for echo-swagger. Registering again is a no-op.
func RegisterSwagger(doc *openapi3.T) error {
	registerSwagger.Lock()
	defer registerSwagger.Unlock()

	if swag.GetSwagger(SwaggerInstance) != nil {
		return nil
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	swag.Register(SwaggerInstance, swaggerDoc{json: string(raw)})
	return nil
}
