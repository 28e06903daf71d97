package handlers

import (
	"fmt"
	"net/http"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/internal/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type HandlerFunc func(w http.ResponseWriter, r *http.Request) *app_error.AppError

func WrapHandler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			requestId := RequestID(r)
			log.Error().Err(err).Msg(fmt.Sprintf("error occur, request id: %s", requestId))
			WriteJSON(w, err.Code, dtos.Response[any]{
				Success:   false,
				Error:     err.Message,
				RequestID: requestId,
			})
		}
	}
}

func CreateResponse[T any](data T, requestId string) dtos.Response[T] {
	return dtos.Response[T]{
		Success:   true,
		Data:      data,
		RequestID: requestId,
	}
}

func RequestID(r *http.Request) string {
	return middleware.RequestIDFrom(r.Context())
}
