// Package roles serves the read-only role reference data at /api/roles.
// Forms use the list to populate their role selectors.
package roles

import (
	"context"
	"net/http"

	rolestore "github.com/dalemusser/helmdesk/internal/app/store/roles"
	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"github.com/dalemusser/helmdesk/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Roles *rolestore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Roles: rolestore.New(db), Log: logger}
}

type roleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns all roles in rank order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	roles, err := h.Roles.List(ctx)
	if err != nil {
		h.Log.Error("roles: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load roles")
		return
	}

	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleResponse{ID: role.ID, Name: role.Name})
	}
	httpjson.Write(w, http.StatusOK, out)
}
