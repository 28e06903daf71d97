package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestId_PropagatesThroughContext(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	rec := httptest.NewRecorder()

	WithRequestId(next).ServeHTTP(rec, req)

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err, "request id should be a uuid")

	// the same id is echoed to the client
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDFrom_EmptyContext(t *testing.T) {
	assert.Empty(t, RequestIDFrom(context.Background()))
}
