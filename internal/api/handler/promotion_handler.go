package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
)

type PromotionHandler struct {
	promotionService service.IPromotionService
}

func NewPromotionHandler(promotionService service.IPromotionService) *PromotionHandler {
	if promotionService == nil {
		panic("promotionService cannot be nil")
	}
	return &PromotionHandler{
		promotionService: promotionService,
	}
}

// @Summary list all promotions
// @Tags promotions
// @Produce json
// @Router /promotions [get]
func (h *PromotionHandler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionService.GetPromotions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, promotions)
}

// @Summary promotions inside their active window
// @Tags promotions
// @Produce json
// @Router /promotions/active [get]
func (h *PromotionHandler) GetActivePromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionService.GetActivePromotions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, promotions)
}

// @Summary create promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Router /promotions [post]
func (h *PromotionHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req dto.PromotionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.Title == "" {
		writeValidation(w, "title is required")
		return
	}

	promotion := req.ToModel()
	if err := h.promotionService.CreatePromotion(r.Context(), promotion); err != nil {
		writeError(w, err)
		return
	}
	api.CreatedJSON(w, promotion)
}

// @Summary update promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Router /promotions/{id} [put]
func (h *PromotionHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid promotion id")
		return
	}

	var req dto.PromotionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	promotion, err := h.promotionService.UpdatePromotion(r.Context(), id, req.ToModel())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, promotion)
}

// @Summary delete promotion
// @Tags promotions
// @Produce json
// @Router /promotions/{id} [delete]
func (h *PromotionHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid promotion id")
		return
	}
	if err := h.promotionService.DeletePromotion(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]uint{"deleted": id})
}
