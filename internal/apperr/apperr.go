package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	ValidationCode        Code = 460
	NotFoundCode          Code = 404
	InsufficientStockCode Code = 461
	UpstreamCode          Code = 502
	InternalCode          Code = 500
	TooManyRequestsCode   Code = 429
)

// ErrStrMap 對外的預設錯誤訊息，handler 在沒有更具體訊息時使用
var ErrStrMap = map[Code]string{
	ValidationCode:        "invalid request",
	NotFoundCode:          "resource not found",
	InsufficientStockCode: "insufficient stock",
	UpstreamCode:          "upstream service error",
	InternalCode:          "internal server error",
	TooManyRequestsCode:   "too many requests",
}

// HTTPStatus 錯誤碼對應的 HTTP status
func (c Code) HTTPStatus() int {
	switch c {
	case ValidationCode, InsufficientStockCode:
		return http.StatusBadRequest
	case NotFoundCode:
		return http.StatusNotFound
	case TooManyRequestsCode:
		return http.StatusTooManyRequests
	case UpstreamCode, InternalCode:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Code Code
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Msg: msg}
}

func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, msg string, err error) *AppError {
	return &AppError{Code: code, Msg: msg, Err: err}
}

// FromError 取出 AppError，非 AppError 一律視為 internal
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: InternalCode, Msg: ErrStrMap[InternalCode], Err: err}
}
