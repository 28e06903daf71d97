package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRequestID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.RequestIdKey, id))
}

func TestWrapHandler_ErrorEnvelope(t *testing.T) {
	handler := WrapHandler(func(w http.ResponseWriter, r *http.Request) *app_error.AppError {
		return app_error.Forbidden("You don't have access to this class")
	})

	req := withRequestID(httptest.NewRequest(http.MethodGet, "/api/classes", nil), "req-42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body dtos.Response[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "You don't have access to this class", body.Error)
	assert.Equal(t, "req-42", body.RequestID)
}

func TestWrapHandler_SuccessPassesThrough(t *testing.T) {
	handler := WrapHandler(func(w http.ResponseWriter, r *http.Request) *app_error.AppError {
		WriteJSON(w, http.StatusOK, CreateResponse("pong", RequestID(r)))
		return nil
	})

	req := withRequestID(httptest.NewRequest(http.MethodGet, "/api/hello", nil), "req-7")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body dtos.Response[string]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "pong", body.Data)
	assert.Equal(t, "req-7", body.RequestID)
	assert.Empty(t, body.Error)
}

func TestCreateResponse(t *testing.T) {
	resp := CreateResponse(map[string]int{"count": 3}, "req-1")
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Data["count"])
	assert.Equal(t, "req-1", resp.RequestID)
}
