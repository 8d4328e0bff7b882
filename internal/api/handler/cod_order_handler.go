package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
)

type CodOrderHandler struct {
	codOrderService service.ICodOrderService
}

func NewCodOrderHandler(codOrderService service.ICodOrderService) *CodOrderHandler {
	if codOrderService == nil {
		panic("codOrderService cannot be nil")
	}
	return &CodOrderHandler{
		codOrderService: codOrderService,
	}
}

// @Summary create cash-on-delivery order
// @Tags cod-orders
// @Accept json
// @Produce json
// @Router /cod-orders/create [post]
func (h *CodOrderHandler) CreateCodOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CodOrderCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.UserID == 0 || req.ProductID == 0 {
		writeValidation(w, "user_id and product_id are required")
		return
	}
	if req.UserName == "" || req.UserAddress == "" {
		writeValidation(w, "user_name and user_address are required")
		return
	}

	codOrder, err := h.codOrderService.CreateCodOrder(r.Context(), req.ToInput())
	if err != nil {
		writeError(w, err)
		return
	}
	api.CreatedJSON(w, codOrder)
}

// @Summary list cod orders, newest first
// @Tags cod-orders
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Router /cod-orders/all [get]
func (h *CodOrderHandler) GetCodOrders(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	limit := intQuery(r, "limit", 10)

	result, err := h.codOrderService.GetCodOrders(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	// 分頁欄位回報收斂後的實際值，不回打進來的原始參數
	api.PaginatedJSON(w, result.Orders, result.Total, result.Page, result.Limit)
}

// @Summary update cod order status
// @Tags cod-orders
// @Accept json
// @Produce json
// @Router /cod-orders/status/{id} [put]
func (h *CodOrderHandler) UpdateCodOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid cod order id")
		return
	}

	var req dto.CodOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	codOrder, err := h.codOrderService.UpdateCodOrderStatus(r.Context(), id, model.CodOrderStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, codOrder)
}

// @Summary cod orders of a user
// @Tags cod-orders
// @Produce json
// @Router /cod-orders/user/{user_id} [get]
func (h *CodOrderHandler) GetUserCodOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := uintParam(r, "user_id")
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}
	orders, err := h.codOrderService.GetCodOrdersByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, orders)
}
