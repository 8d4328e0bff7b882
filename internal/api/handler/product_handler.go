package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

// @Summary list products
// @Tags products
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.ProductResponse} "success"
// @Router /products [get]
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProducts(products))
}

// @Summary filter products with pagination
// @Tags products
// @Produce json
// @Success 200 {object} api.PaginatedResponse{data=[]dto.ProductResponse} "success"
// @Router /products/filter [get]
func (h *ProductHandler) FilterProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.ProductFilter{
		Category: q.Get("category"),
		Featured: q.Get("featured") == "true",
		Popular:  q.Get("popular") == "true",
		Search:   q.Get("search"),
		Page:     intQuery(r, "page", 1),
		Limit:    intQuery(r, "limit", 10),
	}
	if raw := q.Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := q.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	products, total, err := h.productService.GetProductsFiltered(r.Context(), &filter)
	if err != nil {
		writeError(w, err)
		return
	}
	// filter 內是收斂後的實際分頁值
	api.PaginatedJSON(w, dto.ConvertProducts(products), total, filter.Page, filter.Limit)
}

// @Summary featured products
// @Tags products
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.ProductResponse} "success"
// @Router /products/featured [get]
func (h *ProductHandler) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetFeaturedProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProducts(products))
}

// @Summary quick picks ranked by sales
// @Tags products
// @Produce json
// @Param limit query int false "result size"
// @Success 200 {object} api.Response{data=[]dto.ProductResponse} "success"
// @Router /products/quick-picks [get]
func (h *ProductHandler) GetQuickPicks(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 10)
	products, err := h.productService.GetQuickPicks(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProducts(products))
}

// @Summary products by category
// @Tags products
// @Produce json
// @Router /products/category/{category} [get]
func (h *ProductHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	products, err := h.productService.GetProductsByCategory(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProducts(products))
}

// @Summary products by subcategory
// @Tags products
// @Produce json
// @Router /products/subcategory/{subcategoryId} [get]
func (h *ProductHandler) GetProductsBySubcategory(w http.ResponseWriter, r *http.Request) {
	subcategoryID, err := uintParam(r, "subcategoryId")
	if err != nil {
		writeValidation(w, "invalid subcategory id")
		return
	}
	products, err := h.productService.GetProductsBySubcategory(r.Context(), subcategoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProducts(products))
}

// @Summary products by group
// @Tags products
// @Produce json
// @Router /products/group/{groupId} [get]
func (h *ProductHandler) GetProductsByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := uintParam(r, "groupId")
	if err != nil {
		writeValidation(w, "invalid group id")
		return
	}
	products, err := h.productService.GetProductsByGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProducts(products))
}

// @Summary distinct categories of active products
// @Tags products
// @Produce json
// @Router /products/categories [get]
func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productService.GetCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, categories)
}

// @Summary products deliverable to a pincode
// @Tags products
// @Produce json
// @Param pincode query string true "6 digit pincode"
// @Router /products/delivery-zone [get]
func (h *ProductHandler) GetProductsByDeliveryZone(w http.ResponseWriter, r *http.Request) {
	pincode := r.URL.Query().Get("pincode")
	if pincode == "" {
		writeValidation(w, "pincode is required")
		return
	}
	products, err := h.productService.GetProductsByDeliveryZone(r.Context(), pincode)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProducts(products))
}

// @Summary per-product delivery check for a pincode
// @Tags products
// @Accept json
// @Produce json
// @Router /products/check-delivery [post]
func (h *ProductHandler) CheckDelivery(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckDeliveryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.Pincode == "" {
		writeValidation(w, "pincode is required")
		return
	}
	if len(req.ProductIDs) == 0 {
		writeValidation(w, "product_ids is required")
		return
	}

	check, err := h.productService.CheckDelivery(r.Context(), req.Pincode, req.ProductIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, check)
}

// @Summary update product delivery type
// @Tags products
// @Accept json
// @Produce json
// @Router /products/{id}/delivery [put]
func (h *ProductHandler) UpdateProductDelivery(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid product id")
		return
	}

	var req dto.ProductDeliveryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	product, err := h.productService.UpdateProductDelivery(r.Context(), id, req.DeliveryType)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProduct(*product))
}

// @Summary product detail with variants
// @Tags products
// @Produce json
// @Router /products/{id} [get]
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid product id")
		return
	}
	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProduct(*product))
}

// @Summary list variants of a product
// @Tags products
// @Produce json
// @Router /products/{id}/variants [get]
func (h *ProductHandler) GetVariants(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid product id")
		return
	}
	variants, err := h.productService.GetVariants(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, variants)
}

// @Summary create variant
// @Tags products
// @Accept json
// @Produce json
// @Router /products/{id}/variants [post]
func (h *ProductHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid product id")
		return
	}

	var req dto.VariantCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}
	if req.VariantName == "" {
		writeValidation(w, "variant_name is required")
		return
	}

	variant := &model.ProductVariant{
		ProductID:       id,
		VariantName:     req.VariantName,
		VariantPrice:    req.VariantPrice,
		VariantDiscount: req.VariantDiscount,
		VariantStock:    req.VariantStock,
		VariantWeight:   req.VariantWeight,
		VariantUnit:     req.VariantUnit,
		IsDefault:       req.IsDefault,
		Active:          true,
	}
	if req.VariantOldPrice != nil {
		variant.VariantOldPrice = *req.VariantOldPrice
	}
	if req.ShippingAmount != nil {
		variant.ShippingAmount = *req.ShippingAmount
	}

	if err := h.productService.CreateVariant(r.Context(), variant); err != nil {
		writeError(w, err)
		return
	}
	api.CreatedJSON(w, variant)
}

// @Summary update variant, whitelist fields only
// @Tags products
// @Accept json
// @Produce json
// @Router /variants/{id} [put]
func (h *ProductHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid variant id")
		return
	}

	var req dto.VariantUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	variant, err := h.productService.UpdateVariant(r.Context(), id, service.VariantUpdate{
		VariantName:     req.VariantName,
		VariantPrice:    req.VariantPrice,
		VariantOldPrice: req.VariantOldPrice,
		VariantDiscount: req.VariantDiscount,
		VariantStock:    req.VariantStock,
		VariantWeight:   req.VariantWeight,
		VariantUnit:     req.VariantUnit,
		ShippingAmount:  req.ShippingAmount,
		IsDefault:       req.IsDefault,
		Active:          req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, variant)
}

// @Summary delete variant
// @Tags products
// @Produce json
// @Router /variants/{id} [delete]
func (h *ProductHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeValidation(w, "invalid variant id")
		return
	}
	if err := h.productService.DeleteVariant(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	api.SuccessJSON(w, map[string]uint{"deleted": id})
}
