package store

import "github.com/dalemusser/helmdesk/internal/console/api"

// Snapshot is one immutable view of the store. Reducers copy on write, so a
// snapshot handed to a subscriber or selector never changes underneath it.
type Snapshot struct {
	Entities []api.Entity
	Selected *api.Entity
	ops      [numOps]Status
}

// Op returns the named operation's status.
func (s Snapshot) Op(op Op) Status { return s.ops[op] }

// Find returns the entity with the given id and whether it is present.
func (s Snapshot) Find(id string) (api.Entity, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return api.Entity{}, false
}

// event is one reducer input. Exactly one of the payload fields is meaningful
// per kind.
type event struct {
	kind     eventKind
	op       Op
	errMsg   string
	entities []api.Entity
	entity   api.Entity
	id       string
}

type eventKind int

const (
	evBegin eventKind = iota
	evReject
	evListReplaced
	evSelected
	evCreated
	evUpdated
	evDeleted
)

// reduce maps a snapshot and an event to the next snapshot. Pure: the input
// snapshot is never mutated, and unrelated operations' slots are never
// touched.
func reduce(s Snapshot, ev event) Snapshot {
	next := s
	switch ev.kind {
	case evBegin:
		next.ops[ev.op] = Status{Phase: Pending}

	case evReject:
		next.ops[ev.op] = Status{Phase: Settled, Err: ev.errMsg}

	case evListReplaced:
		next.Entities = append([]api.Entity(nil), ev.entities...)
		next.ops[OpFetchAll] = Status{Phase: Settled}

	case evSelected:
		e := ev.entity
		next.Selected = &e
		next.ops[OpFetchOne] = Status{Phase: Settled}

	case evCreated:
		next.Entities = append(append([]api.Entity(nil), s.Entities...), ev.entity)
		next.ops[OpCreate] = Status{Phase: Settled}

	case evUpdated:
		// Replace in place by identity. A stale id (no longer present) is
		// silently ignored rather than surfaced.
		next.Entities = append([]api.Entity(nil), s.Entities...)
		for i := range next.Entities {
			if next.Entities[i].ID == ev.entity.ID {
				next.Entities[i] = ev.entity
				break
			}
		}
		next.ops[OpUpdate] = Status{Phase: Settled}

	case evDeleted:
		out := make([]api.Entity, 0, len(s.Entities))
		for _, e := range s.Entities {
			if e.ID != ev.id {
				out = append(out, e)
			}
		}
		next.Entities = out
		next.ops[OpDelete] = Status{Phase: Settled}
	}
	return next
}
