package http

import (
	"context"
	"net/http"
	"time"

	"farmadelivery/internal/core/application/usecases/commands"
	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/core/domain/model/pharmacy"

	"github.com/labstack/echo/v4"
)

// CommandHandlers groups the state changing use cases served over HTTP.
type CommandHandlers struct {
	CreateInsurancePlan   *commands.CreateInsurancePlanCommandHandler
	CreatePharmacy        *commands.CreatePharmacyCommandHandler
	AddProduct            *commands.AddProductCommandHandler
	UpdateProductStock    *commands.UpdateProductStockCommandHandler
	SaveInsuranceDiscount *commands.SaveInsuranceDiscountCommandHandler
	CreateCustomer        *commands.CreateCustomerCommandHandler
	Checkout              *commands.CheckoutCommandHandler
	PrepareOrder          *commands.PrepareOrderCommandHandler
	MarkOrderReady        *commands.MarkOrderReadyCommandHandler
	CancelOrder           *commands.CancelOrderCommandHandler
	CreateCourier         *commands.CreateCourierCommandHandler
	UpdateCourierLocation *commands.UpdateCourierLocationCommandHandler
	AcceptOrder           *commands.AcceptOrderCommandHandler
	RejectOrder           *commands.RejectOrderCommandHandler
	DeliverOrder          *commands.DeliverOrderCommandHandler
}

// QueryHandlers groups the read models served over HTTP.
type QueryHandlers struct {
	PharmacyCatalog     queries.GetPharmacyCatalogQueryHandler
	PriceQuote          queries.GetPriceQuoteQueryHandler
	NearbyPharmacies    queries.GetNearbyPharmaciesQueryHandler
	Order               queries.GetOrderQueryHandler
	PharmacyOrders      queries.GetPharmacyOrdersQueryHandler
	Couriers            queries.GetCouriersQueryHandler
	AvailableOrders     queries.GetAvailableOrdersQueryHandler
	CourierActiveOrders queries.GetCourierActiveOrdersQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
}

// NewServer creates the HTTP server over the given handlers.
func NewServer(commandHandlers CommandHandlers, queryHandlers QueryHandlers) *Server {
	return &Server{commands: commandHandlers, queries: queryHandlers}
}

type createdResponse struct {
	ID string `json:"id"`
}

// CreateInsurancePlan handles POST /api/v1/insurance-plans.
func (s *Server) CreateInsurancePlan(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req newInsurancePlanRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	planID := kernel.NewUUID()
	cmd, err := commands.NewCreateInsurancePlanCommand(actor, planID, req.Name, req.Variant, req.MemberNumber)
	if err != nil {
		return err
	}
	if err = s.commands.CreateInsurancePlan.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: planID.String()})
}

// CreatePharmacy handles POST /api/v1/pharmacies. The pharmacy is registered
// under the caller's id.
func (s *Server) CreatePharmacy(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err = actor.Require("register pharmacy", kernel.RolePharmacy); err != nil {
		return err
	}

	var req newPharmacyRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	address, err := req.Address.toDomain()
	if err != nil {
		return err
	}
	plans, err := toUUIDs(req.AcceptedPlans)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreatePharmacyCommand(actor.ID(), req.Name, req.LicenseNumber, address, plans)
	if err != nil {
		return err
	}
	if err = s.commands.CreatePharmacy.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: actor.ID().String()})
}

// GetPharmacyCatalog handles GET /api/v1/pharmacies/{id}/products.
func (s *Server) GetPharmacyCatalog(c echo.Context) error {
	pharmacyID, err := pathID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetPharmacyCatalogQuery(pharmacyID)
	if err != nil {
		return err
	}
	items, err := s.queries.PharmacyCatalog.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCatalogResponse(items))
}

// AddProduct handles POST /api/v1/pharmacies/{id}/products.
func (s *Server) AddProduct(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	pharmacyID, err := pathID(c)
	if err != nil {
		return err
	}

	var req newProductRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewAddProductCommand(actor, productID, pharmacyID, pharmacy.ProductDetails{
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		BasePrice:            req.BasePrice,
		PrescriptionRequired: req.PrescriptionRequired,
	}, *req.Stock)
	if err != nil {
		return err
	}
	if err = s.commands.AddProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: productID.String()})
}

// UpdateProductStock handles PUT /api/v1/products/{id}/stock.
func (s *Server) UpdateProductStock(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c)
	if err != nil {
		return err
	}

	var req stockUpdateRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateProductStockCommand(actor, productID, *req.Stock)
	if err != nil {
		return err
	}
	if err = s.commands.UpdateProductStock.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SaveInsuranceDiscount handles PUT /api/v1/products/{id}/discounts.
func (s *Server) SaveInsuranceDiscount(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c)
	if err != nil {
		return err
	}

	var req discountRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	planID, err := kernel.UUIDFromBytes(req.PlanID[:])
	if err != nil {
		return err
	}
	active := req.Active == nil || *req.Active

	cmd, err := commands.NewSaveInsuranceDiscountCommand(actor, productID, planID, req.Percentage, req.FlatAmount, active)
	if err != nil {
		return err
	}
	if _, err = s.commands.SaveInsuranceDiscount.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetPriceQuote handles GET /api/v1/products/{id}/quote.
func (s *Server) GetPriceQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetPriceQuoteQuery(actor, productID)
	if err != nil {
		return err
	}
	quote, err := s.queries.PriceQuote.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, priceQuoteResponse{
		ProductID: quote.ProductID.String(),
		PlanID:    optionalID(quote.PlanID),
		Base:      quote.Base,
		Discount:  quote.Discount,
		Final:     quote.Final,
	})
}

// CreateCustomer handles POST /api/v1/customers. The customer is registered
// under the caller's id.
func (s *Server) CreateCustomer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err = actor.Require("register customer", kernel.RoleCustomer); err != nil {
		return err
	}

	var req newCustomerRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	address, err := req.Address.toDomain()
	if err != nil {
		return err
	}

	var planID *kernel.UUID
	if req.InsurancePlanID != nil {
		id, err := kernel.UUIDFromBytes(req.InsurancePlanID[:])
		if err != nil {
			return err
		}
		planID = &id
	}

	cmd, err := commands.NewCreateCustomerCommand(actor.ID(), req.Name, address, planID, req.AffiliateNumber)
	if err != nil {
		return err
	}
	if err = s.commands.CreateCustomer.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: actor.ID().String()})
}

// GetNearbyPharmacies handles GET /api/v1/customers/me/nearby-pharmacies.
func (s *Server) GetNearbyPharmacies(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	radius, err := optionalQuery[float64](c, "radius_km")
	if err != nil {
		return err
	}

	query, err := queries.NewGetNearbyPharmaciesQuery(actor, radius)
	if err != nil {
		return err
	}
	pharmacies, err := s.queries.NearbyPharmacies.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]nearbyPharmacyResponse, len(pharmacies))
	for i, p := range pharmacies {
		response[i] = nearbyPharmacyResponse{
			ID:                  p.ID.String(),
			Name:                p.Name,
			Address:             newAddressResponse(p.Address),
			AcceptsCustomerPlan: p.AcceptsCustomerPlan,
			DistanceKm:          p.DistanceKm,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// Checkout handles POST /api/v1/orders.
func (s *Server) Checkout(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	items, err := req.items()
	if err != nil {
		return err
	}
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return err
	}

	var deliveryAddress *kernel.Address
	if req.DeliveryAddress != nil {
		address, err := req.DeliveryAddress.toDomain()
		if err != nil {
			return err
		}
		deliveryAddress = &address
	}

	var prescription *commands.PrescriptionUpload
	if req.Prescription != nil {
		prescription = &commands.PrescriptionUpload{FileRef: req.Prescription.FileRef, Notes: req.Prescription.Notes}
	}

	cmd, err := commands.NewCheckoutCommand(
		actor, kernel.NewUUID(), items, method, deliveryAddress, req.Notes, prescription,
	)
	if err != nil {
		return err
	}
	result, err := s.commands.Checkout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, checkoutResponse{
		OrderID:       result.OrderID.String(),
		Number:        result.Number.String(),
		Status:        result.Status.String(),
		Subtotal:      result.Subtotal,
		DiscountTotal: result.DiscountTotal,
		Total:         result.Total,
	})
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return err
	}
	view, err := s.queries.Order.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderViewResponse(view))
}

// GetPharmacyOrders handles GET /api/v1/pharmacy/orders.
func (s *Server) GetPharmacyOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	rawStatus, err := optionalQuery[string](c, "status")
	if err != nil {
		return err
	}

	var status *order.Status
	if rawStatus != nil {
		parsed, err := order.ParseStatus(*rawStatus)
		if err != nil {
			return err
		}
		status = &parsed
	}

	query, err := queries.NewGetPharmacyOrdersQuery(actor, status)
	if err != nil {
		return err
	}
	orders, err := s.queries.PharmacyOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderSummariesResponse(orders))
}

// PrepareOrder handles POST /api/v1/pharmacy/orders/{id}/prepare.
func (s *Server) PrepareOrder(c echo.Context) error {
	return transition(c, commands.NewPrepareOrderCommand, s.commands.PrepareOrder.Handle)
}

// MarkOrderReady handles POST /api/v1/pharmacy/orders/{id}/ready.
func (s *Server) MarkOrderReady(c echo.Context) error {
	return transition(c, commands.NewMarkOrderReadyCommand, s.commands.MarkOrderReady.Handle)
}

// CancelOrder handles POST /api/v1/pharmacy/orders/{id}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	return transition(c, commands.NewCancelOrderCommand, s.commands.CancelOrder.Handle)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCouriersQuery(actor)
	if err != nil {
		return err
	}
	couriers, err := s.queries.Couriers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]courierResponse, len(couriers))
	for i, item := range couriers {
		response[i] = courierResponse{
			ID:                item.ID.String(),
			Name:              item.Name,
			Vehicle:           item.Vehicle.String(),
			Active:            item.Active,
			Location:          newCoordinatesResponse(item.Location),
			LocationUpdatedAt: item.LocationUpdatedAt,
			Available:         item.Available,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers. The courier is registered
// under the caller's id.
func (s *Server) CreateCourier(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err = actor.Require("register courier", kernel.RoleCourier); err != nil {
		return err
	}

	var req newCourierRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	vehicle, err := courier.ParseVehicle(req.Vehicle)
	if err != nil {
		return err
	}
	testLocation, err := req.TestLocation.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateCourierCommand(actor.ID(), req.Name, vehicle, testLocation)
	if err != nil {
		return err
	}
	if err = s.commands.CreateCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: actor.ID().String()})
}

// UpdateCourierLocation handles PUT /api/v1/courier/location.
func (s *Server) UpdateCourierLocation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req coordinatesRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(actor, *req.Lat, *req.Lon)
	if err != nil {
		return err
	}
	if err = s.commands.UpdateCourierLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetAvailableOrders handles GET /api/v1/courier/orders/available.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetAvailableOrdersQuery(actor)
	if err != nil {
		return err
	}
	orders, err := s.queries.AvailableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderSummariesResponse(orders))
}

// GetCourierActiveOrders handles GET /api/v1/courier/orders/active.
func (s *Server) GetCourierActiveOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCourierActiveOrdersQuery(actor)
	if err != nil {
		return err
	}
	orders, err := s.queries.CourierActiveOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderSummariesResponse(orders))
}

// AcceptOrder handles POST /api/v1/courier/orders/{id}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	return transition(c, commands.NewAcceptOrderCommand, s.commands.AcceptOrder.Handle)
}

// RejectOrder handles POST /api/v1/courier/orders/{id}/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectOrderCommand(actor, orderID)
	if err != nil {
		return err
	}
	if err = s.commands.RejectOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/courier/orders/{id}/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	return transition(c, commands.NewDeliverOrderCommand, s.commands.DeliverOrder.Handle)
}

// transition runs an order status command for the order in the path and
// answers with the updated order.
func transition[C any](
	c echo.Context,
	newCommand func(kernel.Actor, kernel.UUID) (C, error),
	handle func(context.Context, C) (*order.Order, error),
) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := newCommand(actor, orderID)
	if err != nil {
		return err
	}
	updated, err := handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(updated))
}

// Health handles GET /health.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
