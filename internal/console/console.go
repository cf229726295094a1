// Package console wires the user-directory admin screens together: the
// mutation store holding the canonical collection, the dialog session for
// add/edit, and the authentication gate in front of the initial load.
package console

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dalemusser/helmdesk/internal/console/api"
	"github.com/dalemusser/helmdesk/internal/console/dialog"
	"github.com/dalemusser/helmdesk/internal/console/form"
	"github.com/dalemusser/helmdesk/internal/console/store"
)

// Backend is the remote surface the console talks to.
type Backend interface {
	api.EntityAPI
	api.ReferenceAPI
}

// Config configures a Console. Store and Session are built internally.
type Config struct {
	Backend   Backend
	Log       *zap.Logger
	Scheduler dialog.Scheduler // nil means wall-clock timers
	OnClose   func()           // forwarded to the dialog session
}

// Console is the top-level controller for the user directory screen.
type Console struct {
	backend Backend
	log     *zap.Logger
	store   *store.Store
	session *dialog.Session

	mu      sync.Mutex
	authed  bool
	fetched bool
}

func New(cfg Config) *Console {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	st := store.New(cfg.Backend, log)
	sess := dialog.NewSession(dialog.Config{
		Store:     st,
		Refs:      cfg.Backend,
		Log:       log,
		Scheduler: cfg.Scheduler,
		OnClose:   cfg.OnClose,
	})
	return &Console{backend: cfg.Backend, log: log, store: st, session: sess}
}

// Store exposes the canonical collection for list rendering.
func (c *Console) Store() *store.Store { return c.store }

// Session exposes the dialog session for chrome binding.
func (c *Console) Session() *dialog.Session { return c.session }

// SetAuthenticated flips the auth gate. The first transition to true kicks
// off the initial fetch-all; the fetch itself is auth-unaware, so a stale
// session still surfaces as an unauthorized error on the fetch-all slot.
func (c *Console) SetAuthenticated(ctx context.Context, authed bool) {
	c.mu.Lock()
	c.authed = authed
	start := authed && !c.fetched
	if start {
		c.fetched = true
	}
	c.mu.Unlock()
	if !start {
		return
	}
	if err := c.store.FetchAll(ctx); err != nil {
		c.log.Warn("initial user load failed", zap.Error(err))
	}
}

// Authenticated reports the current gate state.
func (c *Console) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authed
}

// OpenCreate opens the add-user dialog with a fresh draft.
func (c *Console) OpenCreate(ctx context.Context) {
	c.session.Open(ctx, form.Create, nil)
}

// OpenEdit resolves the target through the store's fetch-one slot, then opens
// the edit dialog seeded from it.
func (c *Console) OpenEdit(ctx context.Context, id string) error {
	if err := c.store.FetchOne(ctx, id); err != nil {
		return err
	}
	entity := c.store.Snapshot().Selected
	c.session.Open(ctx, form.Edit, entity)
	return nil
}

// Delete removes a user from the directory. Convergence with an
// already-deleted id is silent, matching the store's delete semantics.
func (c *Console) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, id)
}
