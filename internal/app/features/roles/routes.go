// internal/app/features/roles/routes.go
package roles

import (
	"github.com/dalemusser/helmdesk/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.List)
	return r
}
