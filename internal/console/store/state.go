// Package store holds the canonical entity collection and the per-operation
// status flags the console renders from. It is the single source of truth:
// every mutation of the collection funnels through the five named operations,
// and state advances only through pure reducer transitions over immutable
// snapshots.
package store

// Op names the five asynchronous operations. Each keeps its own pending and
// error slots so a slow delete never blocks a concurrent create indicator.
type Op int

const (
	OpFetchAll Op = iota
	OpFetchOne
	OpCreate
	OpUpdate
	OpDelete
	numOps
)

func (o Op) String() string {
	switch o {
	case OpFetchAll:
		return "fetch-all"
	case OpFetchOne:
		return "fetch-one"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// Phase is an operation's tri-state lifecycle.
type Phase int

const (
	Idle Phase = iota
	Pending
	Settled
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Settled:
		return "settled"
	}
	return "idle"
}

// Status is one operation's phase plus its last error message. Err is empty
// after a success and holds the rejection message after a failure.
type Status struct {
	Phase Phase
	Err   string
}
