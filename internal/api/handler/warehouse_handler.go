package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
)

type WarehouseHandler struct {
	warehouseService service.IWarehouseService
}

func NewWarehouseHandler(warehouseService service.IWarehouseService) *WarehouseHandler {
	if warehouseService == nil {
		panic("warehouseService cannot be nil")
	}
	return &WarehouseHandler{
		warehouseService: warehouseService,
	}
}

// @Summary list warehouses with zones
// @Tags warehouse
// @Produce json
// @Param type query string false "central or zonal"
// @Param is_active query bool false "active filter"
// @Router /warehouse [get]
func (h *WarehouseHandler) GetWarehouses(w http.ResponseWriter, r *http.Request) {
	filter := db.WarehouseFilter{Type: r.URL.Query().Get("type")}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	details, err := h.warehouseService.GetWarehouses(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertWarehouseDetails(details))
}

// @Summary create warehouse with zone mappings
// @Tags warehouse
// @Accept json
// @Produce json
// @Router /warehouse [post]
func (h *WarehouseHandler) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req dto.WarehouseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeValidation(w, "name is required")
		return
	}

	warehouse, err := h.warehouseService.CreateWarehouse(r.Context(), req.ToInput())
	if err != nil {
		writeError(w, err)
		return
	}
	api.CreatedJSON(w, warehouse)
}

// @Summary warehouses grouped by hierarchy level
// @Tags warehouse
// @Produce json
// @Router /warehouse/hierarchy [get]
func (h *WarehouseHandler) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	hierarchy, err := h.warehouseService.GetHierarchy(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]interface{}{
		"warehouses": hierarchy.Warehouses,
		"by_level":   hierarchy.ByLevel,
	})
}

// @Summary warehouse detail with zones
// @Tags warehouse
// @Produce json
// @Router /warehouse/{id} [get]
func (h *WarehouseHandler) GetWarehouseByID(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid warehouse id")
		return
	}
	detail, err := h.warehouseService.GetWarehouseByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertWarehouseDetail(*detail))
}

// @Summary update warehouse, zone remap by set diff
// @Tags warehouse
// @Accept json
// @Produce json
// @Router /warehouse/{id} [put]
func (h *WarehouseHandler) UpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid warehouse id")
		return
	}

	var req dto.WarehouseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeValidation(w, "name is required")
		return
	}

	warehouse, err := h.warehouseService.UpdateWarehouse(r.Context(), id, req.ToInput())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, warehouse)
}

// @Summary delete warehouse, rejected while stock records exist
// @Tags warehouse
// @Produce json
// @Router /warehouse/{id} [delete]
func (h *WarehouseHandler) DeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid warehouse id")
		return
	}
	if err := h.warehouseService.DeleteWarehouse(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]uint{"deleted": id})
}

// @Summary stock records of a warehouse
// @Tags warehouse
// @Produce json
// @Router /warehouse/{id}/products [get]
func (h *WarehouseHandler) GetWarehouseProducts(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid warehouse id")
		return
	}
	lines, err := h.warehouseService.GetWarehouseProducts(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertStockLines(lines))
}

// @Summary stock a product in a warehouse
// @Tags warehouse
// @Accept json
// @Produce json
// @Router /warehouse/{id}/products [post]
func (h *WarehouseHandler) AddWarehouseProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid warehouse id")
		return
	}

	var req dto.StockCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.ProductID == 0 {
		writeValidation(w, "product_id is required")
		return
	}
	if req.StockQuantity < 0 || req.ReservedQuantity < 0 {
		writeValidation(w, "stock quantities cannot be negative")
		return
	}

	record := &model.ProductWarehouseStock{
		ProductID:        req.ProductID,
		StockQuantity:    req.StockQuantity,
		ReservedQuantity: req.ReservedQuantity,
		MinimumThreshold: 10,
		CostPerUnit:      req.CostPerUnit,
	}
	if req.MinimumThreshold != nil {
		record.MinimumThreshold = *req.MinimumThreshold
	}

	if err := h.warehouseService.AddWarehouseProduct(r.Context(), id, record); err != nil {
		writeError(w, err)
		return
	}
	api.CreatedJSON(w, record)
}

// @Summary update warehouse stock record
// @Tags warehouse
// @Accept json
// @Produce json
// @Router /warehouse/{id}/products/{productId} [put]
func (h *WarehouseHandler) UpdateWarehouseProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid warehouse id")
		return
	}
	productID, err := uintParam(r, "productId")
	if err != nil {
		writeValidation(w, "invalid product id")
		return
	}

	var req dto.StockUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		writeValidation(w, "no fields to update")
		return
	}

	record, err := h.warehouseService.UpdateWarehouseProduct(r.Context(), id, productID, updates)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, record)
}

// @Summary remove product from warehouse
// @Tags warehouse
// @Produce json
// @Router /warehouse/{id}/products/{productId} [delete]
func (h *WarehouseHandler) RemoveWarehouseProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid warehouse id")
		return
	}
	productID, err := uintParam(r, "productId")
	if err != nil {
		writeValidation(w, "invalid product id")
		return
	}
	if err := h.warehouseService.RemoveWarehouseProduct(r.Context(), id, productID); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]uint{"warehouse_id": id, "product_id": productID})
}
