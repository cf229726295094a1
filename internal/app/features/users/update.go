// internal/app/features/users/update.go
package users

import (
	"context"
	"errors"
	"net/http"

	rolestore "github.com/dalemusser/helmdesk/internal/app/store/roles"
	userstore "github.com/dalemusser/helmdesk/internal/app/store/users"
	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"github.com/dalemusser/helmdesk/internal/app/system/timeouts"
	"github.com/dalemusser/helmdesk/internal/console/form"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Update rewrites a user's profile. A request without a password keeps the
// stored credential; the edit-mode rules only check a password the caller
// actually sent.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	var req userRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	draft := form.Draft{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Secret: req.Password,
		RoleID: req.RoleID,
	}
	if errs := form.Validate(draft, form.Edit); !errs.Valid() {
		writeValidationFailure(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Roles.GetByID(ctx, req.RoleID); err != nil {
		if errors.Is(err, rolestore.ErrNotFound) {
			httpjson.Error(w, http.StatusBadRequest, "unknown_role", "role does not exist")
			return
		}
		h.Log.Error("users: role check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not update user")
		return
	}

	u, err := h.Users.Update(ctx, id, userstore.UserUpdate{
		FullName: req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrNotFound):
			httpjson.Error(w, http.StatusNotFound, "not_found", "user not found")
		case errors.Is(err, userstore.ErrDuplicateEmail):
			httpjson.Error(w, http.StatusBadRequest, "duplicate_email", err.Error())
		default:
			h.Log.Error("users: update failed", zap.String("user_id", id), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal", "could not update user")
		}
		return
	}

	names, err := h.roleNames(ctx)
	if err != nil {
		h.Log.Error("users: role lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not update user")
		return
	}

	h.Log.Info("user updated", zap.String("user_id", id))
	httpjson.Write(w, http.StatusOK, toResponse(u, names))
}
