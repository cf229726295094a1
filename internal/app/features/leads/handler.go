// Package leads serves the lead pipeline as JSON under /api/leads:
// list, fetch, capture, update, and delete. Lead notes may arrive with
// markup from web forms or imports; the store sanitizes them before they
// are persisted.
package leads

import (
	"net/http"
	"strings"

	leadstore "github.com/dalemusser/helmdesk/internal/app/store/leads"
	"github.com/dalemusser/helmdesk/internal/app/system/auth"
	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"github.com/dalemusser/helmdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the store the lead endpoints depend on.
type Handler struct {
	Leads *leadstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Leads: leadstore.New(db), Log: logger}
}

// leadRequest is the writable shape for capture and update.
type leadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Note    string `json:"note,omitempty"`
	Source  string `json:"source,omitempty"`
}

type leadResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Note    string `json:"note,omitempty"`
	Source  string `json:"source,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
}

func toResponse(l models.Lead) leadResponse {
	return leadResponse{
		ID:      l.ID,
		Name:    l.FullName,
		Email:   l.Email,
		Phone:   l.Phone,
		Company: l.Company,
		Note:    l.Note,
		Source:  l.Source,
		OwnerID: l.OwnerID,
	}
}

// validate applies the lead rules: a name and email are required, and the
// source must be one of the known channels when given.
func (req leadRequest) validate() (code, msg string) {
	if strings.TrimSpace(req.Name) == "" {
		return "validation_failed", "name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		return "validation_failed", "email is required"
	}
	switch strings.ToLower(strings.TrimSpace(req.Source)) {
	case "", "web", "referral", "import":
	default:
		return "unknown_source", "source must be web, referral, or import"
	}
	return "", ""
}

func writeBadRequest(w http.ResponseWriter, code, msg string) {
	httpjson.Error(w, http.StatusBadRequest, code, msg)
}

// owner returns the signed-in user's id, "" when the request carries no
// session (imports run without one).
func owner(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.ID
	}
	return ""
}
