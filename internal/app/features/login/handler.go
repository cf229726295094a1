// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/helmdesk/internal/app/store/users"
	"github.com/dalemusser/helmdesk/internal/app/system/auth"
	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"github.com/dalemusser/helmdesk/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves POST /login.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Serve verifies the credentials and establishes a session. Unknown emails
// and wrong passwords get the same response so the endpoint does not leak
// which accounts exist.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "bad_request", "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		h.Log.Error("login: user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}

	if !userstore.VerifyPassword(user, req.Password) {
		httpjson.Error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	sessionUser := auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Email: user.Email,
		Role:  user.RoleID,
	}
	if err := auth.SignIn(w, r, sessionUser); err != nil {
		h.Log.Error("login: session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", sessionUser.ID))
	httpjson.Write(w, http.StatusOK, loginResponse{
		ID:    sessionUser.ID,
		Name:  sessionUser.Name,
		Email: sessionUser.Email,
		Role:  sessionUser.Role,
	})
}
