// internal/app/features/users/list.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/helmdesk/internal/app/store/users"
	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"github.com/dalemusser/helmdesk/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// List returns every user ordered by folded name, each with its role
// embedded.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	names, err := h.roleNames(ctx)
	if err != nil {
		h.Log.Error("users: role lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load users")
		return
	}

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("users: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load users")
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u, names))
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Get returns a single user by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		h.Log.Error("users: get failed", zap.String("user_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load user")
		return
	}

	names, err := h.roleNames(ctx)
	if err != nil {
		h.Log.Error("users: role lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load user")
		return
	}
	httpjson.Write(w, http.StatusOK, toResponse(*u, names))
}
