package routers

import (
	"net/http"

	"github.com/benedekkincses/edu-bridge-sub000/config"
	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	"github.com/benedekkincses/edu-bridge-sub000/internal/middleware"
	user_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/user"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
)

func NewRouter(state *state.AppState) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)

	auth := middleware.KeycloakAuth(
		state.Keys,
		user_repo.NewUserRepo(state),
		config.Conf.KEYCLOAK.Issuer,
		config.Conf.KEYCLOAK.Audience,
	)

	r.Get("/api/hello", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("hello", handlers.RequestID(r)))
	})

	SchoolRouter(r, state, auth)
	ClassRouter(r, state, auth)
	ThreadRouter(r, state, auth)
	NewsRouter(r, state, auth)
	return r
}
