package http

import (
	"time"

	"farmadelivery/internal/core/application/usecases/commands"
	"farmadelivery/internal/core/application/usecases/queries"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request bodies.

type coordinatesRequest struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lon *float64 `json:"lon" validate:"required"`
}

func (r *coordinatesRequest) toDomain() (*kernel.Coordinates, error) {
	if r == nil {
		return nil, nil
	}
	return kernel.NewCoordinatesPtr(*r.Lat, *r.Lon)
}

type addressRequest struct {
	Street      string              `json:"street" validate:"required"`
	Number      string              `json:"number"`
	City        string              `json:"city" validate:"required"`
	Province    string              `json:"province"`
	PostalCode  string              `json:"postal_code"`
	Country     string              `json:"country"`
	Coordinates *coordinatesRequest `json:"coordinates"`
}

func (r addressRequest) toDomain() (kernel.Address, error) {
	coordinates, err := r.Coordinates.toDomain()
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(r.Street, r.Number, r.City, r.Province, r.PostalCode, r.Country, coordinates)
}

type newInsurancePlanRequest struct {
	Name         string `json:"name" validate:"required"`
	Variant      string `json:"variant"`
	MemberNumber string `json:"member_number" validate:"required"`
}

type newPharmacyRequest struct {
	Name          string         `json:"name" validate:"required"`
	LicenseNumber string         `json:"license_number" validate:"required"`
	Address       addressRequest `json:"address" validate:"required"`
	AcceptedPlans []uuid.UUID    `json:"accepted_plans"`
}

type newProductRequest struct {
	Name                 string          `json:"name" validate:"required"`
	Description          string          `json:"description"`
	Category             string          `json:"category"`
	BasePrice            decimal.Decimal `json:"base_price"`
	Stock                *int            `json:"stock" validate:"required,gte=0"`
	PrescriptionRequired bool            `json:"prescription_required"`
}

type stockUpdateRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

type discountRequest struct {
	PlanID     uuid.UUID        `json:"plan_id"`
	Percentage *decimal.Decimal `json:"percentage"`
	FlatAmount *decimal.Decimal `json:"flat_amount"`
	Active     *bool            `json:"active"`
}

type newCustomerRequest struct {
	Name            string         `json:"name" validate:"required"`
	Address         addressRequest `json:"address" validate:"required"`
	InsurancePlanID *uuid.UUID     `json:"insurance_plan_id"`
	AffiliateNumber string         `json:"affiliate_number"`
}

type checkoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

type prescriptionRequest struct {
	FileRef string `json:"file_ref" validate:"required"`
	Notes   string `json:"notes"`
}

type checkoutRequest struct {
	Items           []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod   string                `json:"payment_method" validate:"required"`
	DeliveryAddress *addressRequest       `json:"delivery_address"`
	Notes           string                `json:"notes"`
	Prescription    *prescriptionRequest  `json:"prescription"`
}

func (r checkoutRequest) items() ([]commands.CheckoutItem, error) {
	items := make([]commands.CheckoutItem, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := kernel.UUIDFromBytes(item.ProductID[:])
		if err != nil {
			return nil, err
		}
		items = append(items, commands.CheckoutItem{ProductID: productID, Quantity: item.Quantity})
	}
	return items, nil
}

type newCourierRequest struct {
	Name         string              `json:"name" validate:"required"`
	Vehicle      string              `json:"vehicle" validate:"required"`
	TestLocation *coordinatesRequest `json:"test_location"`
}

func toUUIDs(ids []uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		converted, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

// Response bodies.

type coordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func newCoordinatesResponse(c *kernel.Coordinates) *coordinatesResponse {
	if c == nil {
		return nil
	}
	return &coordinatesResponse{Lat: c.Lat(), Lon: c.Lon()}
}

type addressResponse struct {
	Street      string               `json:"street"`
	Number      string               `json:"number,omitempty"`
	City        string               `json:"city"`
	Province    string               `json:"province,omitempty"`
	PostalCode  string               `json:"postal_code,omitempty"`
	Country     string               `json:"country"`
	Coordinates *coordinatesResponse `json:"coordinates,omitempty"`
}

func newAddressResponse(a kernel.Address) addressResponse {
	return addressResponse{
		Street:      a.Street(),
		Number:      a.Number(),
		City:        a.City(),
		Province:    a.Province(),
		PostalCode:  a.PostalCode(),
		Country:     a.Country(),
		Coordinates: newCoordinatesResponse(a.Coordinates()),
	}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

type catalogItemResponse struct {
	ProductID            string          `json:"product_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Category             string          `json:"category"`
	BasePrice            decimal.Decimal `json:"base_price"`
	Stock                int             `json:"stock"`
	PrescriptionRequired bool            `json:"prescription_required"`
}

func newCatalogResponse(items []queries.CatalogItem) []catalogItemResponse {
	out := make([]catalogItemResponse, len(items))
	for i, item := range items {
		out[i] = catalogItemResponse{
			ProductID:            item.ProductID.String(),
			Name:                 item.Name,
			Description:          item.Description,
			Category:             item.Category,
			BasePrice:            item.BasePrice,
			Stock:                item.Stock,
			PrescriptionRequired: item.PrescriptionRequired,
		}
	}
	return out
}

type priceQuoteResponse struct {
	ProductID string          `json:"product_id"`
	PlanID    *string         `json:"plan_id,omitempty"`
	Base      decimal.Decimal `json:"base"`
	Discount  decimal.Decimal `json:"discount"`
	Final     decimal.Decimal `json:"final"`
}

type nearbyPharmacyResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Address             addressResponse `json:"address"`
	AcceptsCustomerPlan bool            `json:"accepts_customer_plan"`
	DistanceKm          *float64        `json:"distance_km,omitempty"`
}

type checkoutResponse struct {
	OrderID       string          `json:"order_id"`
	Number        string          `json:"number"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Total         decimal.Decimal `json:"total"`
}

type orderLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type prescriptionResponse struct {
	FileRef     string     `json:"file_ref"`
	Notes       string     `json:"notes,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

type orderResponse struct {
	ID                  string                `json:"id"`
	Number              string                `json:"number"`
	CustomerID          string                `json:"customer_id"`
	PharmacyID          string                `json:"pharmacy_id"`
	CourierID           *string               `json:"courier_id,omitempty"`
	Status              string                `json:"status"`
	PaymentMethod       string                `json:"payment_method"`
	Subtotal            decimal.Decimal       `json:"subtotal"`
	DiscountTotal       decimal.Decimal       `json:"discount_total"`
	Total               decimal.Decimal       `json:"total"`
	DeliveryAddress     addressResponse       `json:"delivery_address"`
	Notes               string                `json:"notes,omitempty"`
	Prescription        *prescriptionResponse `json:"prescription,omitempty"`
	Lines               []orderLineResponse   `json:"lines"`
	CreatedAt           time.Time             `json:"created_at"`
	EstimatedDeliveryAt time.Time             `json:"estimated_delivery_at"`
	DeliveredAt         *time.Time            `json:"delivered_at,omitempty"`
}

func newOrderResponse(o *order.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, orderLineResponse{
			ProductID:   l.ProductID().String(),
			ProductName: l.ProductName(),
			Quantity:    l.Quantity(),
			UnitPrice:   l.UnitPrice(),
			Discount:    l.Discount(),
			Subtotal:    l.Subtotal(),
		})
	}

	var prescription *prescriptionResponse
	if p := o.Prescription(); p != nil {
		prescription = &prescriptionResponse{FileRef: p.FileRef(), Notes: p.Notes(), ValidatedAt: p.ValidatedAt()}
	}

	return orderResponse{
		ID:                  o.ID().String(),
		Number:              o.Number().String(),
		CustomerID:          o.CustomerID().String(),
		PharmacyID:          o.PharmacyID().String(),
		CourierID:           optionalID(o.Courier()),
		Status:              o.Status().String(),
		PaymentMethod:       o.PaymentMethod().String(),
		Subtotal:            o.Subtotal(),
		DiscountTotal:       o.DiscountTotal(),
		Total:               o.Total(),
		DeliveryAddress:     newAddressResponse(o.DeliveryAddress()),
		Notes:               o.Notes(),
		Prescription:        prescription,
		Lines:               lines,
		CreatedAt:           o.CreatedAt(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		DeliveredAt:         o.DeliveredAt(),
	}
}

func newOrderViewResponse(o queries.GetOrderQueryResponse) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineResponse{
			ProductID:   l.ProductID.String(),
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			Subtotal:    l.Subtotal,
		})
	}

	var prescription *prescriptionResponse
	if p := o.Prescription; p != nil {
		prescription = &prescriptionResponse{FileRef: p.FileRef, Notes: p.Notes, ValidatedAt: p.ValidatedAt}
	}

	return orderResponse{
		ID:                  o.ID.String(),
		Number:              o.Number,
		CustomerID:          o.CustomerID.String(),
		PharmacyID:          o.PharmacyID.String(),
		CourierID:           optionalID(o.CourierID),
		Status:              o.Status.String(),
		PaymentMethod:       o.PaymentMethod.String(),
		Subtotal:            o.Subtotal,
		DiscountTotal:       o.DiscountTotal,
		Total:               o.Total,
		DeliveryAddress:     newAddressResponse(o.DeliveryAddress),
		Notes:               o.Notes,
		Prescription:        prescription,
		Lines:               lines,
		CreatedAt:           o.CreatedAt,
		EstimatedDeliveryAt: o.EstimatedDeliveryAt,
		DeliveredAt:         o.DeliveredAt,
	}
}

type orderSummaryResponse struct {
	ID                  string          `json:"id"`
	Number              string          `json:"number"`
	CustomerID          string          `json:"customer_id"`
	PharmacyID          string          `json:"pharmacy_id"`
	PharmacyName        string          `json:"pharmacy_name"`
	CourierID           *string         `json:"courier_id,omitempty"`
	Status              string          `json:"status"`
	PaymentMethod       string          `json:"payment_method"`
	Total               decimal.Decimal `json:"total"`
	DeliveryAddress     addressResponse `json:"delivery_address"`
	CreatedAt           time.Time       `json:"created_at"`
	EstimatedDeliveryAt time.Time       `json:"estimated_delivery_at"`
	DistanceKm          *float64        `json:"distance_km,omitempty"`
}

func newOrderSummariesResponse(orders []queries.OrderSummary) []orderSummaryResponse {
	out := make([]orderSummaryResponse, len(orders))
	for i, o := range orders {
		out[i] = orderSummaryResponse{
			ID:                  o.ID.String(),
			Number:              o.Number,
			CustomerID:          o.CustomerID.String(),
			PharmacyID:          o.PharmacyID.String(),
			PharmacyName:        o.PharmacyName,
			CourierID:           optionalID(o.CourierID),
			Status:              o.Status.String(),
			PaymentMethod:       o.PaymentMethod.String(),
			Total:               o.Total,
			DeliveryAddress:     newAddressResponse(o.DeliveryAddress),
			CreatedAt:           o.CreatedAt,
			EstimatedDeliveryAt: o.EstimatedDeliveryAt,
			DistanceKm:          o.DistanceKm,
		}
	}
	return out
}

type courierResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Vehicle           string               `json:"vehicle"`
	Active            bool                 `json:"active"`
	Location          *coordinatesResponse `json:"location,omitempty"`
	LocationUpdatedAt *time.Time           `json:"location_updated_at,omitempty"`
	Available         bool                 `json:"available"`
}
