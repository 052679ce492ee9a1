package http

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds what the router needs besides the Server.
type RouterConfig struct {
	TokenSecret []byte
	Logger      *slog.Logger
}

// NewRouter builds the Echo instance with every route of the API, the actor
// middleware and contract validation under /api/v1.
func NewRouter(ctx context.Context, s *Server, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	contract, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	e.GET("/health", Health)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(SwaggerInstance)))

	v1 := e.Group("/api/v1", ActorMiddleware(cfg.TokenSecret), contract)

	v1.POST("/insurance-plans", s.CreateInsurancePlan)

	v1.POST("/pharmacies", s.CreatePharmacy)
	v1.GET("/pharmacies/:id/products", s.GetPharmacyCatalog)
	v1.POST("/pharmacies/:id/products", s.AddProduct)
	v1.PUT("/products/:id/stock", s.UpdateProductStock)
	v1.PUT("/products/:id/discounts", s.SaveInsuranceDiscount)
	v1.GET("/products/:id/quote", s.GetPriceQuote)

	v1.POST("/customers", s.CreateCustomer)
	v1.GET("/customers/me/nearby-pharmacies", s.GetNearbyPharmacies)

	v1.POST("/orders", s.Checkout)
	v1.GET("/orders/:id", s.GetOrder)

	v1.GET("/pharmacy/orders", s.GetPharmacyOrders)
	v1.POST("/pharmacy/orders/:id/prepare", s.PrepareOrder)
	v1.POST("/pharmacy/orders/:id/ready", s.MarkOrderReady)
	v1.POST("/pharmacy/orders/:id/cancel", s.CancelOrder)

	v1.GET("/couriers", s.GetCouriers)
	v1.POST("/couriers", s.CreateCourier)
	v1.PUT("/courier/location", s.UpdateCourierLocation)
	v1.GET("/courier/orders/available", s.GetAvailableOrders)
	v1.GET("/courier/orders/active", s.GetCourierActiveOrders)
	v1.POST("/courier/orders/:id/accept", s.AcceptOrder)
	v1.POST("/courier/orders/:id/reject", s.RejectOrder)
	v1.POST("/courier/orders/:id/deliver", s.DeliverOrder)

	return e, nil
}
