// Package dialog orchestrates one add/edit-user form dialog: draft lifecycle,
// reference-data loading, validation, submission, and the success/error/
// loading states the chrome renders. The chrome itself (backdrop, sizing,
// buttons) is an external collaborator fed through the Container view.
package dialog

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/helmdesk/internal/console/api"
	"github.com/dalemusser/helmdesk/internal/console/form"
	"github.com/dalemusser/helmdesk/internal/console/refdata"
	"github.com/dalemusser/helmdesk/internal/console/store"
	"go.uber.org/zap"
)

// State is the submission coordinator's phase.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	}
	return "idle"
}

// DefaultCloseDelay is how long the success message stays up before the
// dialog closes itself.
const DefaultCloseDelay = 1500 * time.Millisecond

// Config wires a session's collaborators.
type Config struct {
	Store      *store.Store
	Refs       api.ReferenceAPI
	Log        *zap.Logger
	Scheduler  Scheduler
	CloseDelay time.Duration
	// OnClose is invoked when the session closes itself (auto-close after
	// success). Manual Close calls do not re-notify.
	OnClose func()
}

// Session is one form dialog's lifetime across opens and closes. A session
// serializes all of its state behind one mutex; asynchronous completions
// re-check the open flag and generation before touching dialog-local state,
// so a completion landing after close is a no-op for the UI while the shared
// store still converges.
type Session struct {
	cfg Config

	mu          sync.Mutex
	open        bool
	gen         int
	target      *api.Entity
	ctrl        *form.Controller
	loader      *refdata.Loader
	state       State
	successMsg  string
	mutationErr string
	cancelClose func()
}

// NewSession builds a closed session.
func NewSession(cfg Config) *Session {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewScheduler()
	}
	if cfg.CloseDelay <= 0 {
		cfg.CloseDelay = DefaultCloseDelay
	}
	return &Session{cfg: cfg, ctrl: form.NewController()}
}

// Open starts a dialog session. Edit mode takes the entity being edited;
// create mode passes nil. The reference-data fetch is kicked off exactly once
// for this open and applied when it settles, provided the session is still
// the same open.
func (s *Session) Open(ctx context.Context, mode form.Mode, entity *api.Entity) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.open = true
	s.state = StateIdle
	s.successMsg = ""
	s.mutationErr = ""
	s.target = entity
	if s.cancelClose != nil {
		s.cancelClose()
		s.cancelClose = nil
	}
	s.ctrl.Init(mode, entity, nil)
	s.loader = refdata.NewLoader(s.cfg.Refs, s.cfg.Log)
	loader := s.loader
	s.mu.Unlock()

	go func() {
		loader.Load(ctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.open || s.gen != gen {
			return
		}
		s.ctrl.ApplyOptions(loader.Roles())
	}()
}

// Close dismisses the dialog and discards the draft. Idempotent: closing a
// closed session is a no-op, as is the auto-close firing after a manual
// close.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if !s.open {
		return
	}
	s.open = false
	s.state = StateIdle
	s.successMsg = ""
	s.mutationErr = ""
	if s.cancelClose != nil {
		s.cancelClose()
		s.cancelClose = nil
	}
	s.ctrl.Reset()
}

// Patch applies one field edit to the draft. Ignored once the dialog is
// closed — a dismissed dialog never mutates.
func (s *Session) Patch(field form.Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.ctrl.Patch(field, value)
}

// Submit runs the validate → mutate → feedback pipeline. A second call while
// a submission is in flight is a silent no-op: not queued, not an error.
// Exactly one mutation is issued per successful validation pass.
func (s *Session) Submit(ctx context.Context) {
	s.mu.Lock()
	if !s.open || s.state == StateSubmitting {
		s.mu.Unlock()
		return
	}

	s.state = StateValidating
	s.mutationErr = ""
	errs := s.ctrl.Validate()
	if !errs.Valid() {
		// Field errors surface through Container; no network call.
		s.state = StateIdle
		s.mu.Unlock()
		return
	}

	s.state = StateSubmitting
	gen := s.gen
	mode := s.ctrl.Mode()
	payload := s.ctrl.Payload()
	var targetID string
	if s.target != nil {
		targetID = s.target.ID
	}
	s.mu.Unlock()

	var err error
	if mode == form.Create {
		_, err = s.cfg.Store.Create(ctx, payload)
	} else {
		_, err = s.cfg.Store.Update(ctx, targetID, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Close guard: the dialog may have been dismissed while the mutation was
	// in flight. The store has already reconciled; the UI must not react.
	if !s.open || s.gen != gen {
		return
	}

	if err != nil {
		s.state = StateIdle
		s.mutationErr = api.ErrorMessage(err)
		if s.mutationErr == "" {
			if mode == form.Create {
				s.mutationErr = "Failed to create user."
			} else {
				s.mutationErr = "Failed to update user."
			}
		}
		return
	}

	if mode == form.Create {
		s.successMsg = "User created."
	} else {
		s.successMsg = "User saved."
	}
	s.state = StateSucceeded
	s.ctrl.Reset()

	// Refresh the canonical list so role associations render fully populated.
	go func() {
		if ferr := s.cfg.Store.FetchAll(ctx); ferr != nil {
			s.cfg.Log.Warn("list refresh after submit failed", zap.Error(ferr))
		}
	}()

	s.cancelClose = s.cfg.Scheduler.AfterFunc(s.cfg.CloseDelay, func() {
		s.autoClose(gen)
	})
}

// autoClose fires after the success delay. The generation check is the
// cancellation token: a manual close or a reopen in the interim wins.
func (s *Session) autoClose(gen int) {
	s.mu.Lock()
	notify := false
	if s.open && s.gen == gen {
		s.closeLocked()
		notify = true
	}
	s.mu.Unlock()
	if notify && s.cfg.OnClose != nil {
		s.cfg.OnClose()
	}
}

// IsOpen reports whether the dialog is showing.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// State returns the coordinator phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns the current draft snapshot.
func (s *Session) Draft() form.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Draft()
}

// FieldErrors returns the surfaced field errors.
func (s *Session) FieldErrors() form.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Errors()
}
