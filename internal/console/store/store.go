package store

import (
	"context"
	"sync"

	"github.com/dalemusser/helmdesk/internal/console/api"
	"go.uber.org/zap"
)

// Store synchronizes the canonical entity collection with the remote entity
// API. It is created once at process start and simply dropped at process end.
//
// Methods block until their remote call settles; callers that need the UI to
// stay responsive invoke them from a goroutine and observe progress through
// Snapshot/Subscribe. All state transitions are serialized through dispatch,
// which is the Go rendering of the source's single event loop.
type Store struct {
	api api.EntityAPI
	log *zap.Logger

	mu      sync.Mutex
	state   Snapshot
	subs    map[int]func(Snapshot)
	nextSub int
}

// New builds a store over the given entity API.
func New(entityAPI api.EntityAPI, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{api: entityAPI, log: log, subs: map[int]func(Snapshot){}}
}

// Snapshot returns the current immutable state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to observe every new snapshot. The returned cancel
// removes the subscription. fn is called without the store lock held.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) dispatch(ev event) Snapshot {
	s.mu.Lock()
	s.state = reduce(s.state, ev)
	next := s.state
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(next)
	}
	return next
}

// FetchAll replaces the canonical collection wholesale from the remote list.
func (s *Store) FetchAll(ctx context.Context) error {
	s.dispatch(event{kind: evBegin, op: OpFetchAll})
	entities, err := s.api.ListEntities(ctx)
	if err != nil {
		s.reject(OpFetchAll, err)
		return err
	}
	s.dispatch(event{kind: evListReplaced, entities: entities})
	return nil
}

// FetchOne loads a single entity into the selected slot.
func (s *Store) FetchOne(ctx context.Context, id string) error {
	s.dispatch(event{kind: evBegin, op: OpFetchOne})
	entity, err := s.api.GetEntity(ctx, id)
	if err != nil {
		s.reject(OpFetchOne, err)
		return err
	}
	s.dispatch(event{kind: evSelected, entity: entity})
	return nil
}

// Create appends the newly created entity to the canonical collection.
func (s *Store) Create(ctx context.Context, p api.Payload) (api.Entity, error) {
	s.dispatch(event{kind: evBegin, op: OpCreate})
	entity, err := s.api.CreateEntity(ctx, p)
	if err != nil {
		s.reject(OpCreate, err)
		return api.Entity{}, err
	}
	s.dispatch(event{kind: evCreated, entity: entity})
	return entity, nil
}

// Update replaces the matching entity in place. An id no longer present in
// the collection converges silently: the remote result is dropped without an
// error.
func (s *Store) Update(ctx context.Context, id string, p api.Payload) (api.Entity, error) {
	s.dispatch(event{kind: evBegin, op: OpUpdate})
	entity, err := s.api.UpdateEntity(ctx, id, p)
	if err != nil {
		s.reject(OpUpdate, err)
		return api.Entity{}, err
	}
	s.dispatch(event{kind: evUpdated, entity: entity})
	return entity, nil
}

// Delete removes the matching entity. Deleting an id already absent leaves
// the collection unchanged and sets no error. The remote error is returned
// to the caller so a confirmation flow can keep its own dialog open.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.dispatch(event{kind: evBegin, op: OpDelete})
	if err := s.api.DeleteEntity(ctx, id); err != nil {
		s.reject(OpDelete, err)
		return err
	}
	s.dispatch(event{kind: evDeleted, id: id})
	return nil
}

// reject records the operation-level error message and clears the pending
// flag; data owned by other operations is untouched.
func (s *Store) reject(op Op, err error) {
	s.log.Warn("operation rejected", zap.Stringer("op", op), zap.Error(err))
	s.dispatch(event{kind: evReject, op: op, errMsg: err.Error()})
}
