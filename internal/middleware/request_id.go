package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIdKey string

const RequestIdKey requestIdKey = "requestId"

// WithRequestId tags every request with a fresh id. The id travels in
// the request context and is echoed back to the client as X-Request-ID
// so error reports can be matched against server logs.
func WithRequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqId := uuid.New().String()
		ctx := context.WithValue(r.Context(), RequestIdKey, reqId)
		w.Header().Set("X-Request-ID", reqId)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFrom returns the id placed by WithRequestId, or "" when the
// middleware did not run.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(RequestIdKey).(string)
	return id
}
