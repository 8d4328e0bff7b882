package api

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/apperr"
)

// Response 所有成功回應的統一外層
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ResponseError 所有失敗回應的統一外層
type ResponseError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Pagination 分頁資訊
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResponse 分頁列表回應
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func SuccessJSON(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func CreatedJSON(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Data: data})
}

func PaginatedJSON(w http.ResponseWriter, data interface{}, total int64, page, limit int) {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	writeJSON(w, http.StatusOK, PaginatedResponse{
		Success: true,
		Data:    data,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	})
}

// ErrorJSON 從 error 取出 AppError 並寫出對應的 HTTP status
func ErrorJSON(w http.ResponseWriter, err error) {
	appErr := apperr.FromError(err)
	msg := appErr.Msg
	if msg == "" {
		msg = apperr.ErrStrMap[appErr.Code]
	}
	writeJSON(w, appErr.Code.HTTPStatus(), ResponseError{Success: false, Error: msg})
}
