package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/apperr"
	"github.com/RoyceAzure/lab/storefront/internal/util/ratelimit"
	"github.com/RoyceAzure/lab/storefront/pkg/api"
)

// NewRateLimitMiddleware 全站限流，桶耗盡回 429
func NewRateLimitMiddleware(bucket *ratelimit.TokenBucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !bucket.Allow() {
				api.ErrorJSON(w, apperr.New(apperr.TooManyRequestsCode, apperr.ErrStrMap[apperr.TooManyRequestsCode]))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
