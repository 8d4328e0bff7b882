package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/apperr"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

var notFoundErrs = []error{
	service.ErrProductNotFound,
	service.ErrVariantNotFound,
	service.ErrCartItemNotFound,
	service.ErrWarehouseNotFound,
	service.ErrParentNotFound,
	service.ErrStockRecordNotFound,
	service.ErrZoneNotFound,
	service.ErrCodOrderNotFound,
	service.ErrPromotionNotFound,
	gorm.ErrRecordNotFound,
}

var validationErrs = []error{
	service.ErrInvalidQuantity,
	service.ErrInvalidDeliveryType,
	service.ErrCartEmpty,
	service.ErrInvalidWarehouseType,
	service.ErrZonalRequiresZones,
	service.ErrParentNotCentral,
	service.ErrWarehouseSelfParent,
	service.ErrWarehouseHasStock,
	service.ErrStockRecordExists,
	service.ErrZoneNotFoundForMapping,
	service.ErrZoneNameTaken,
	service.ErrInvalidPincode,
	service.ErrEmptyUpload,
	service.ErrCodBelowMinimum,
	service.ErrInvalidCodStatus,
	service.ErrInvalidDiscount,
	service.ErrInvalidPromoWindow,
}

// toAppError 把 service 層的 sentinel error 映射成對外錯誤碼
// 認不得的一律當 internal，不外洩細節
func toAppError(err error) *apperr.AppError {
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, service.ErrInsufficientStock) {
		return apperr.Wrap(apperr.InsufficientStockCode, err.Error(), err)
	}
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			return apperr.Wrap(apperr.NotFoundCode, err.Error(), err)
		}
	}
	for _, target := range validationErrs {
		if errors.Is(err, target) {
			return apperr.Wrap(apperr.ValidationCode, err.Error(), err)
		}
	}
	return apperr.Wrap(apperr.InternalCode, apperr.ErrStrMap[apperr.InternalCode], err)
}

func writeError(w http.ResponseWriter, err error) {
	api.ErrorJSON(w, toAppError(err))
}

func writeValidation(w http.ResponseWriter, msg string) {
	api.ErrorJSON(w, apperr.New(apperr.ValidationCode, msg))
}

// uintParam 解析路徑參數，非正整數回傳 error
func uintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
