package handlers

import (
	"net/http"

	"github.com/ghuser/mealflow/pkg/errhttp"
	"github.com/ghuser/mealflow/pkg/httpx"
	pkgvalidator "github.com/ghuser/mealflow/pkg/validator"
	appsvcs "github.com/ghuser/mealflow/services/order/application/services"
)

// PlaceOrderRequest is the request body for POST /orders.
type PlaceOrderRequest struct {
	RestaurantName string `json:"restaurantName" validate:"required,min=1,max=255"`
}

// PlaceOrderResponse is returned on successful order placement.
type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

// PlaceOrderHandler handles POST /orders requests.
type PlaceOrderHandler struct {
	svc *appsvcs.Services
}

// NewPlaceOrderHandler returns a PlaceOrderHandler backed by the given services.
func NewPlaceOrderHandler(svc *appsvcs.Services) *PlaceOrderHandler {
	return &PlaceOrderHandler{svc: svc}
}

// Execute places a new order and returns its correlation key.
func (h *PlaceOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[PlaceOrderRequest](w, r)
	if !ok {
		return
	}

	orderID, err := h.svc.Order.PlaceOrder(r.Context(), req.RestaurantName)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, PlaceOrderResponse{OrderID: orderID})
}
