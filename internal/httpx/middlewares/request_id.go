package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/orders/internal/logging"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID takes the request ID from the incoming header or generates one,
// echoes it back and puts it into the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(HeaderXRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, requestID)

		ctx := logging.WithRequestID(r.Context(), requestID)
		// keep chi's middleware.GetReqID working
		ctx = context.WithValue(ctx, middleware.RequestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
