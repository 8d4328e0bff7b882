package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// @Summary convert cart into an order
// @Tags orders
// @Accept json
// @Produce json
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.UserID == 0 {
		writeValidation(w, "user_id is required")
		return
	}

	order, err := h.orderService.Checkout(r.Context(), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.CreatedJSON(w, order)
}

// @Summary user orders with items
// @Tags orders
// @Produce json
// @Router /orders/user/{user_id} [get]
func (h *OrderHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := uintParam(r, "user_id")
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}
	orders, err := h.orderService.GetOrdersByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, orders)
}
