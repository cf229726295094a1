// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/helmdesk/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user resource. Every endpoint requires a signed-in
// session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{userID}", h.Get)
	r.Put("/{userID}", h.Update)
	r.Delete("/{userID}", h.Delete)

	return r
}
