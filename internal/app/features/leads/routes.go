// internal/app/features/leads/routes.go
package leads

import (
	"github.com/dalemusser/helmdesk/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the lead resource. Every endpoint requires a signed-in
// session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{leadID}", h.Get)
	r.Put("/{leadID}", h.Update)
	r.Delete("/{leadID}", h.Delete)

	return r
}
