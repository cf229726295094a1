// Package refdata loads the read-only option sets a form depends on but does
// not own (the selectable roles). A loader belongs to one dialog-open session
// and fetches exactly once for it.
package refdata

import (
	"context"
	"sync"

	"github.com/dalemusser/helmdesk/internal/console/api"
	"go.uber.org/zap"
)

// Option is one selectable reference entry.
type Option struct {
	ID    string
	Label string
}

// warnLoadFailed is the dismissable banner text shown inside the dialog when
// the reference fetch fails. The failure is non-fatal: the form stays usable
// and submit falls back to a role validation error.
const warnLoadFailed = "Roles could not be loaded. Close and reopen the dialog to retry."

// Loader fetches the role options for one dialog session. Create a fresh
// Loader on each closed→open transition; Load is a no-op once a fetch is in
// flight or finished, so a session can never issue a duplicate fetch.
type Loader struct {
	refs api.ReferenceAPI
	log  *zap.Logger

	mu       sync.Mutex
	inflight bool
	settled  bool
	options  []Option
	warning  string
}

// NewLoader builds a loader for one open session.
func NewLoader(refs api.ReferenceAPI, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{refs: refs, log: log}
}

// Load performs the session's single fetch. A failure degrades to an empty
// option list plus a warning; it never propagates as an error. Safe to call
// concurrently; only the first call does work.
func (l *Loader) Load(ctx context.Context) {
	l.mu.Lock()
	if l.inflight || l.settled {
		l.mu.Unlock()
		return
	}
	l.inflight = true
	l.mu.Unlock()

	roles, err := l.refs.ListRoles(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight = false
	l.settled = true
	if err != nil {
		l.log.Warn("reference data load failed", zap.Error(err))
		l.options = nil
		l.warning = warnLoadFailed
		return
	}
	l.options = make([]Option, 0, len(roles))
	for _, r := range roles {
		l.options = append(l.options, Option{ID: r.ID, Label: r.Name})
	}
}

// Pending reports whether the fetch has not settled yet. The role control is
// disabled with a loading indicator while pending.
func (l *Loader) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.settled
}

// Options returns the loaded option sequence, empty until the fetch settles
// or when it failed.
func (l *Loader) Options() []Option {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Option, len(l.options))
	copy(out, l.options)
	return out
}

// Roles returns the options in the api shape, for handing to the form
// controller's ApplyOptions.
func (l *Loader) Roles() []api.Role {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]api.Role, 0, len(l.options))
	for _, o := range l.options {
		out = append(out, api.Role{ID: o.ID, Name: o.Label})
	}
	return out
}

// Warning returns the banner text from a failed load, "" otherwise.
func (l *Loader) Warning() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.warning
}
