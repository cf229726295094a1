// internal/app/features/leads/crud.go
package leads

import (
	"context"
	"errors"
	"net/http"

	leadstore "github.com/dalemusser/helmdesk/internal/app/store/leads"
	"github.com/dalemusser/helmdesk/internal/app/system/httpjson"
	"github.com/dalemusser/helmdesk/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// List returns all leads, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	leads, err := h.Leads.List(ctx)
	if err != nil {
		h.Log.Error("leads: list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load leads")
		return
	}

	out := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toResponse(l))
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Get returns a single lead by its UUID.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "leadID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	l, err := h.Leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leadstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "not_found", "lead not found")
			return
		}
		h.Log.Error("leads: get failed", zap.String("lead_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load lead")
		return
	}
	httpjson.Write(w, http.StatusOK, toResponse(*l))
}

// Create captures a new lead, owned by the signed-in user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if code, msg := req.validate(); code != "" {
		writeBadRequest(w, code, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	l, err := h.Leads.Create(ctx, leadstore.NewLead{
		FullName: req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Note:     req.Note,
		Source:   req.Source,
		OwnerID:  owner(r),
	})
	if err != nil {
		h.Log.Error("leads: create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not create lead")
		return
	}

	h.Log.Info("lead captured", zap.String("lead_id", l.ID), zap.String("source", l.Source))
	httpjson.Write(w, http.StatusCreated, toResponse(l))
}

// Update rewrites a lead.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "leadID")

	var req leadRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if code, msg := req.validate(); code != "" {
		writeBadRequest(w, code, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	l, err := h.Leads.Update(ctx, id, leadstore.LeadUpdate{
		FullName: req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Note:     req.Note,
		Source:   req.Source,
		OwnerID:  owner(r),
	})
	if err != nil {
		if errors.Is(err, leadstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "not_found", "lead not found")
			return
		}
		h.Log.Error("leads: update failed", zap.String("lead_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not update lead")
		return
	}

	httpjson.Write(w, http.StatusOK, toResponse(l))
}

// Delete removes a lead. Deleting an already-removed lead succeeds so
// concurrent deletes converge.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "leadID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	removed, err := h.Leads.Delete(ctx, id)
	if err != nil {
		h.Log.Error("leads: delete failed", zap.String("lead_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not delete lead")
		return
	}
	if removed > 0 {
		h.Log.Info("lead deleted", zap.String("lead_id", id))
	}
	w.WriteHeader(http.StatusNoContent)
}
