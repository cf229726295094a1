// Package users serves the directory's user resource as JSON:
// list, fetch, create, update, and delete under /api/users.
package users

import (
	"context"
	"net/http"

	rolestore "github.com/dalemusser/helmdesk/internal/app/store/roles"
	userstore "github.com/dalemusser/helmdesk/internal/app/store/users"
	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"github.com/dalemusser/helmdesk/internal/console/form"
	"github.com/dalemusser/helmdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the stores the user endpoints depend on.
type Handler struct {
	Users *userstore.Store
	Roles *rolestore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Roles: rolestore.New(db),
		Log:   logger,
	}
}

// userRequest is the writable shape for create and update. A blank password
// on update leaves the stored credential untouched.
type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	RoleID   string `json:"role_id"`
	Password string `json:"password,omitempty"`
}

type roleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// userResponse is the read shape. The role is embedded with its display name
// so clients never need a second lookup; the password hash never leaves the
// store layer.
type userResponse struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Phone string       `json:"phone,omitempty"`
	Role  roleResponse `json:"role"`
}

func toResponse(u models.User, roleNames map[string]string) userResponse {
	return userResponse{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Phone: u.Phone,
		Role:  roleResponse{ID: u.RoleID, Name: roleNames[u.RoleID]},
	}
}

// roleNames loads the role set once and returns slug -> display name. The
// role collection is a handful of documents, so one query per request is
// cheaper than a join.
func (h *Handler) roleNames(ctx context.Context) (map[string]string, error) {
	roles, err := h.Roles.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(roles))
	for _, role := range roles {
		names[role.ID] = role.Name
	}
	return names, nil
}

// validationFailure is the 400 envelope for field-level rejections. Clients
// that only read the error/code pair still get a usable message; richer ones
// can surface per-field errors.
type validationFailure struct {
	Error  string           `json:"error"`
	Code   string           `json:"code"`
	Fields form.FieldErrors `json:"fields"`
}

func writeValidationFailure(w http.ResponseWriter, errs form.FieldErrors) {
	httpjson.Write(w, http.StatusBadRequest, validationFailure{
		Error:  "one or more fields are invalid",
		Code:   "validation_failed",
		Fields: errs,
	})
}
