// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/helmdesk/internal/app/system/auth"
	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve handles POST /logout. Dropping a session that never existed still
// succeeds; the endpoint is idempotent.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("logout: session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
