// internal/app/features/users/create.go
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
	"go.uber.org/zap"
)

// Create validates the request with the same rules the console form applies,
// so a request that passed client-side validation cannot fail server-side
// for a different reason than a true conflict.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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
	if errs := form.Validate(draft, form.Create); !errs.Valid() {
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
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not create user")
		return
	}

	u, err := h.Users.Create(ctx, userstore.NewUser{
		FullName: req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Error(w, http.StatusBadRequest, "duplicate_email", err.Error())
			return
		}
		h.Log.Error("users: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not create user")
		return
	}

	names, err := h.roleNames(ctx)
	if err != nil {
		h.Log.Error("users: role lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not create user")
		return
	}

	h.Log.Info("user created", zap.String("user_id", u.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, toResponse(u, names))
}
