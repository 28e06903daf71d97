package routers

import (
	"net/http"

	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	school_handler "github.com/benedekkincses/edu-bridge-sub000/internal/handlers/school-handler"
	school_service "github.com/benedekkincses/edu-bridge-sub000/internal/use-case/school-case"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
)

func SchoolRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	schoolHandler := school_handler.NewSchoolHandler(state, school_service.NewSchoolService(state))
	r.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Get("/api/schools", handlers.WrapHandler(schoolHandler.ListSchools))
		protected.Get("/api/schools/{schoolId}/users", handlers.WrapHandler(schoolHandler.ListSchoolUsers))
	})
}
