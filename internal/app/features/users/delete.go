// internal/app/features/users/delete.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"github.com/dalemusser/helmdesk/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Delete removes a user. Deleting an id that no longer exists succeeds:
// the caller wanted the user gone and the user is gone, so a concurrent
// delete from another session converges instead of erroring.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	removed, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("users: delete failed", zap.String("user_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not delete user")
		return
	}
	if removed > 0 {
		h.Log.Info("user deleted", zap.String("user_id", id))
	}
	w.WriteHeader(http.StatusNoContent)
}
