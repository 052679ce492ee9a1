package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmadelivery/cmd"
	httpin "farmadelivery/internal/adapters/in/http"
	"farmadelivery/internal/adapters/out/postgres/pgtest"
	"farmadelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

const secret = "integration-secret"

type DeliveryFlowIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *gorm.DB
	root      *cmd.CompositionRoot
	router    *echo.Echo

	admin, pharmacyActor, customer, otherCustomer, courier kernel.Actor
}

func TestDeliveryFlowIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(DeliveryFlowIntegrationTestSuite))
}

func (s *DeliveryFlowIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, db, err := pgtest.Start(s.ctx)
	s.container = container
	s.Require().NoError(err)
	s.db = db

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.root, err = cmd.NewCompositionRoot(s.ctx, cmd.Config{
		JWTSecret:              secret,
		ProximityRadiusKm:      2,
		NotificationBufferSize: 16,
	}, db, logger)
	s.Require().NoError(err)

	s.router, err = s.root.CreateRouter(s.ctx)
	s.Require().NoError(err)
}

func (s *DeliveryFlowIntegrationTestSuite) TearDownSuite() {
	if s.root != nil {
		s.NoError(s.root.Close())
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *DeliveryFlowIntegrationTestSuite) SetupTest() {
	s.Require().NoError(pgtest.Truncate(s.db))

	s.admin = s.actor(kernel.RoleAdmin)
	s.pharmacyActor = s.actor(kernel.RolePharmacy)
	s.customer = s.actor(kernel.RoleCustomer)
	s.otherCustomer = s.actor(kernel.RoleCustomer)
	s.courier = s.actor(kernel.RoleCourier)
}

func (s *DeliveryFlowIntegrationTestSuite) actor(role kernel.Role) kernel.Actor {
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	s.Require().NoError(err)
	return actor
}

// call sends body as JSON on behalf of actor and decodes a 2xx answer into out.
func (s *DeliveryFlowIntegrationTestSuite) call(actor kernel.Actor, method, path string, body, out any) int {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	token, err := httpin.SignActorToken([]byte(secret), actor, time.Now(), time.Hour)
	s.Require().NoError(err)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

type created struct {
	ID string `json:"id"`
}

type order struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	Number     string          `json:"number"`
	Status     string          `json:"status"`
	CourierID  *string         `json:"courier_id"`
	Total      decimal.Decimal `json:"total"`
	DistanceKm *float64        `json:"distance_km"`
	Lines      []struct {
		Quantity int             `json:"quantity"`
		Discount decimal.Decimal `json:"discount"`
	} `json:"lines"`
}

type catalogItem struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

func address(street string, lat, lon float64) map[string]any {
	return map[string]any{
		"street":      street,
		"number":      "100",
		"city":        "CABA",
		"province":    "Buenos Aires",
		"coordinates": map[string]float64{"lat": lat, "lon": lon},
	}
}

// seedCatalog registers an insured pharmacy with one discounted product and
// a customer of that plan. It returns the product id.
func (s *DeliveryFlowIntegrationTestSuite) seedCatalog(stock int) string {
	var plan created
	s.Require().Equal(http.StatusCreated, s.call(s.admin, http.MethodPost, "/insurance-plans", map[string]any{
		"name": "OSDE", "variant": "210", "member_number": "OSDE-210-" + kernel.NewUUID().String()[:8],
	}, &plan))

	s.Require().Equal(http.StatusCreated, s.call(s.pharmacyActor, http.MethodPost, "/pharmacies", map[string]any{
		"name":           "Farmacia Obelisco",
		"license_number": "LIC-" + kernel.NewUUID().String()[:8],
		"address":        address("Av. Corrientes", -34.6037, -58.3816),
		"accepted_plans": []string{plan.ID},
	}, nil))

	var product created
	s.Require().Equal(http.StatusCreated, s.call(s.pharmacyActor, http.MethodPost,
		"/pharmacies/"+s.pharmacyActor.ID().String()+"/products", map[string]any{
			"name":       "Ibuprofeno 400mg",
			"category":   "analgesicos",
			"base_price": "1000.00",
			"stock":      stock,
		}, &product))

	s.Require().Equal(http.StatusNoContent, s.call(s.pharmacyActor, http.MethodPut,
		"/products/"+product.ID+"/discounts", map[string]any{
			"plan_id":    plan.ID,
			"percentage": "20",
		}, nil))

	s.Require().Equal(http.StatusCreated, s.call(s.customer, http.MethodPost, "/customers", map[string]any{
		"name":              "Ana Gómez",
		"address":           address("Av. de Mayo", -34.6083, -58.3712),
		"insurance_plan_id": plan.ID,
		"affiliate_number":  "123456",
	}, nil))

	return product.ID
}

func (s *DeliveryFlowIntegrationTestSuite) checkout(productID string, quantity int) order {
	var placed order
	s.Require().Equal(http.StatusCreated, s.call(s.customer, http.MethodPost, "/orders", map[string]any{
		"items":          []map[string]any{{"product_id": productID, "quantity": quantity}},
		"payment_method": "CASH",
	}, &placed))
	return placed
}

func (s *DeliveryFlowIntegrationTestSuite) catalogStock(productID string) int {
	var items []catalogItem
	s.Require().Equal(http.StatusOK, s.call(s.customer, http.MethodGet,
		"/pharmacies/"+s.pharmacyActor.ID().String()+"/products", nil, &items))
	for _, item := range items {
		if item.ProductID == productID {
			return item.Stock
		}
	}
	s.FailNow("product not in catalog")
	return 0
}

func (s *DeliveryFlowIntegrationTestSuite) registerCourier(courier kernel.Actor, lat, lon float64) {
	s.Require().Equal(http.StatusCreated, s.call(courier, http.MethodPost, "/couriers", map[string]any{
		"name": "Juan Pérez", "vehicle": "MOTORCYCLE",
	}, nil))
	s.Require().Equal(http.StatusNoContent, s.call(courier, http.MethodPut, "/courier/location",
		map[string]float64{"lat": lat, "lon": lon}, nil))
}

func (s *DeliveryFlowIntegrationTestSuite) TestOrderIsDeliveredEndToEnd() {
	productID := s.seedCatalog(5)

	var quote struct {
		Final decimal.Decimal `json:"final"`
	}
	s.Require().Equal(http.StatusOK, s.call(s.customer, http.MethodGet, "/products/"+productID+"/quote", nil, &quote))
	s.True(decimal.NewFromInt(800).Equal(quote.Final), quote.Final.String())

	var nearby []struct {
		ID                  string   `json:"id"`
		AcceptsCustomerPlan bool     `json:"accepts_customer_plan"`
		DistanceKm          *float64 `json:"distance_km"`
	}
	s.Require().Equal(http.StatusOK, s.call(s.customer, http.MethodGet, "/customers/me/nearby-pharmacies", nil, &nearby))
	s.Require().Len(nearby, 1)
	s.Equal(s.pharmacyActor.ID().String(), nearby[0].ID)
	s.True(nearby[0].AcceptsCustomerPlan)
	s.Require().NotNil(nearby[0].DistanceKm)
	s.Less(*nearby[0].DistanceKm, 2.0)

	placed := s.checkout(productID, 2)
	s.Equal("PENDING", placed.Status)
	s.True(decimal.NewFromInt(1600).Equal(placed.Total), placed.Total.String())
	s.Equal(3, s.catalogStock(productID))

	var pharmacyOrders []order
	s.Require().Equal(http.StatusOK, s.call(s.pharmacyActor, http.MethodGet, "/pharmacy/orders", nil, &pharmacyOrders))
	s.Require().Len(pharmacyOrders, 1)
	s.Equal(placed.OrderID, pharmacyOrders[0].ID)

	var updated order
	s.Require().Equal(http.StatusOK, s.call(s.pharmacyActor, http.MethodPost,
		"/pharmacy/orders/"+placed.OrderID+"/prepare", nil, &updated))
	s.Equal("PREPARING", updated.Status)
	s.Require().Equal(http.StatusOK, s.call(s.pharmacyActor, http.MethodPost,
		"/pharmacy/orders/"+placed.OrderID+"/ready", nil, &updated))
	s.Equal("READY", updated.Status)

	s.registerCourier(s.courier, -34.6050, -58.3800)

	var available []order
	s.Require().Equal(http.StatusOK, s.call(s.courier, http.MethodGet, "/courier/orders/available", nil, &available))
	s.Require().Len(available, 1)
	s.Equal(placed.OrderID, available[0].ID)
	s.NotNil(available[0].DistanceKm)

	s.Require().Equal(http.StatusOK, s.call(s.courier, http.MethodPost,
		"/courier/orders/"+placed.OrderID+"/accept", nil, &updated))
	s.Equal("EN_ROUTE", updated.Status)
	s.Require().NotNil(updated.CourierID)
	s.Equal(s.courier.ID().String(), *updated.CourierID)

	var active []order
	s.Require().Equal(http.StatusOK, s.call(s.courier, http.MethodGet, "/courier/orders/active", nil, &active))
	s.Len(active, 1)

	s.Require().Equal(http.StatusOK, s.call(s.courier, http.MethodPost,
		"/courier/orders/"+placed.OrderID+"/deliver", nil, &updated))
	s.Equal("DELIVERED", updated.Status)

	var viewed order
	s.Require().Equal(http.StatusOK, s.call(s.customer, http.MethodGet, "/orders/"+placed.OrderID, nil, &viewed))
	s.Equal("DELIVERED", viewed.Status)
	s.Require().Len(viewed.Lines, 1)
	s.Equal(2, viewed.Lines[0].Quantity)
	s.True(decimal.NewFromInt(200).Equal(viewed.Lines[0].Discount))

	s.Equal(http.StatusForbidden, s.call(s.otherCustomer, http.MethodGet, "/orders/"+placed.OrderID, nil, nil))

	var couriers []struct {
		ID     string `json:"id"`
		Active bool   `json:"active"`
	}
	s.Require().Equal(http.StatusOK, s.call(s.admin, http.MethodGet, "/couriers", nil, &couriers))
	s.Require().Len(couriers, 1)
	s.True(couriers[0].Active)
}

func (s *DeliveryFlowIntegrationTestSuite) TestCancelRestoresStock() {
	productID := s.seedCatalog(4)
	placed := s.checkout(productID, 3)
	s.Equal(1, s.catalogStock(productID))

	var updated order
	s.Require().Equal(http.StatusOK, s.call(s.pharmacyActor, http.MethodPost,
		"/pharmacy/orders/"+placed.OrderID+"/cancel", nil, &updated))
	s.Equal("CANCELLED", updated.Status)
	s.Equal(4, s.catalogStock(productID))

	s.Equal(http.StatusConflict, s.call(s.pharmacyActor, http.MethodPost,
		"/pharmacy/orders/"+placed.OrderID+"/prepare", nil, nil))
}

func (s *DeliveryFlowIntegrationTestSuite) TestCheckoutBeyondStockIsAConflict() {
	productID := s.seedCatalog(1)

	code := s.call(s.customer, http.MethodPost, "/orders", map[string]any{
		"items":          []map[string]any{{"product_id": productID, "quantity": 2}},
		"payment_method": "CASH",
	}, nil)

	s.Equal(http.StatusConflict, code)
	s.Equal(1, s.catalogStock(productID))
}

func (s *DeliveryFlowIntegrationTestSuite) TestRejectHidesOrderFromThatCourierOnly() {
	productID := s.seedCatalog(2)
	placed := s.checkout(productID, 1)
	s.Require().Equal(http.StatusOK, s.call(s.pharmacyActor, http.MethodPost,
		"/pharmacy/orders/"+placed.OrderID+"/prepare", nil, nil))
	s.Require().Equal(http.StatusOK, s.call(s.pharmacyActor, http.MethodPost,
		"/pharmacy/orders/"+placed.OrderID+"/ready", nil, nil))

	second := s.actor(kernel.RoleCourier)
	s.registerCourier(s.courier, -34.6050, -58.3800)
	s.registerCourier(second, -34.6060, -58.3790)

	s.Require().Equal(http.StatusNoContent, s.call(s.courier, http.MethodPost,
		"/courier/orders/"+placed.OrderID+"/reject", nil, nil))
	s.Require().Equal(http.StatusNoContent, s.call(s.courier, http.MethodPost,
		"/courier/orders/"+placed.OrderID+"/reject", nil, nil))

	var available []order
	s.Require().Equal(http.StatusOK, s.call(s.courier, http.MethodGet, "/courier/orders/available", nil, &available))
	s.Empty(available)
	s.Require().Equal(http.StatusOK, s.call(second, http.MethodGet, "/courier/orders/available", nil, &available))
	s.Len(available, 1)

	s.Require().Equal(http.StatusOK, s.call(second, http.MethodPost,
		"/courier/orders/"+placed.OrderID+"/accept", nil, nil))
	s.Equal(http.StatusConflict, s.call(s.courier, http.MethodPost,
		"/courier/orders/"+placed.OrderID+"/accept", nil, nil))
}

func (s *DeliveryFlowIntegrationTestSuite) TestRolesAreEnforced() {
	productID := s.seedCatalog(2)

	s.Equal(http.StatusForbidden, s.call(s.customer, http.MethodPut, "/products/"+productID+"/stock",
		map[string]int{"stock": 50}, nil))
	s.Equal(http.StatusForbidden, s.call(s.customer, http.MethodGet, "/couriers", nil, nil))
	s.Equal(http.StatusForbidden, s.call(s.pharmacyActor, http.MethodPost, "/insurance-plans", map[string]any{
		"name": "Swiss Medical", "member_number": "SM-1",
	}, nil))
	s.Equal(http.StatusNotFound, s.call(s.customer, http.MethodGet, "/orders/"+kernel.NewUUID().String(), nil, nil))
}
