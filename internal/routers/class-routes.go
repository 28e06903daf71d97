package routers

import (
	"net/http"

	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	class_handler "github.com/benedekkincses/edu-bridge-sub000/internal/handlers/class-handler"
	class_service "github.com/benedekkincses/edu-bridge-sub000/internal/use-case/class-case"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
)

func ClassRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	classHandler := class_handler.NewClassHandler(state, class_service.NewClassService(state))
	r.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Get("/api/classes", handlers.WrapHandler(classHandler.ListClasses))
		protected.Get("/api/classes/{classId}/members", handlers.WrapHandler(classHandler.ListClassMembers))
		protected.Get("/api/classes/{classId}/groups", handlers.WrapHandler(classHandler.ListGroups))
		protected.Post("/api/classes/{classId}/groups", handlers.WrapHandler(classHandler.CreateGroup))
		protected.Post("/api/groups/{groupId}/members", handlers.WrapHandler(classHandler.AddGroupMember))
	})
}
