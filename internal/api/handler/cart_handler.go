package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

// @Summary get user cart with product details
// @Tags cart
// @Produce json
// @Router /cart/{user_id} [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := uintParam(r, "user_id")
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}
	lines, total, err := h.cartService.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertCart(lines, total))
}

// @Summary add product to cart, claims stock
// @Tags cart
// @Accept json
// @Produce json
// @Router /cart/add [post]
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req dto.AddToCartDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.UserID == 0 || req.ProductID == 0 {
		writeValidation(w, "user_id and product_id are required")
		return
	}

	item, err := h.cartService.AddToCart(r.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	api.CreatedJSON(w, item)
}

// @Summary update cart item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Router /cart/{cart_item_id} [put]
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	cartItemID, err := uintParam(r, "cart_item_id")
	if err != nil {
		writeValidation(w, "invalid cart item id")
		return
	}

	var req dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	item, err := h.cartService.UpdateCartItem(r.Context(), cartItemID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	if item == nil {
		// 數量歸零等同移除
		api.SuccessJSON(w, map[string]uint{"removed": cartItemID})
		return
	}
	api.SuccessJSON(w, item)
}

// @Summary remove cart item, restores stock
// @Tags cart
// @Produce json
// @Router /cart/{cart_item_id} [delete]
func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cartItemID, err := uintParam(r, "cart_item_id")
	if err != nil {
		writeValidation(w, "invalid cart item id")
		return
	}
	if err := h.cartService.RemoveCartItem(r.Context(), cartItemID); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]uint{"removed": cartItemID})
}

// @Summary clear user cart, best-effort per item
// @Tags cart
// @Produce json
// @Router /cart/clear/{user_id} [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, err := uintParam(r, "user_id")
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}
	result, err := h.cartService.ClearCart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, result)
}
