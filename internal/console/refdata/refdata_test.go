package refdata

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/helmdesk/internal/console/api"
	"go.uber.org/zap"
)

// fakeRefs counts calls and returns a canned response or error.
type fakeRefs struct {
	mu    sync.Mutex
	calls int
	roles []api.Role
	err   error
	block chan struct{} // when non-nil, ListRoles waits until closed
}

func (f *fakeRefs) ListRoles(ctx context.Context) ([]api.Role, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.roles, f.err
}

func (f *fakeRefs) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestLoad_Success(t *testing.T) {
	refs := &fakeRefs{roles: []api.Role{{ID: "r1", Name: "Admin"}, {ID: "r2", Name: "Manager"}}}
	l := NewLoader(refs, zap.NewNop())

	if !l.Pending() {
		t.Error("loader must be pending before Load")
	}
	l.Load(context.Background())

	if l.Pending() {
		t.Error("loader must settle after Load")
	}
	opts := l.Options()
	if len(opts) != 2 || opts[0].ID != "r1" || opts[0].Label != "Admin" {
		t.Errorf("options: %+v", opts)
	}
	if l.Warning() != "" {
		t.Errorf("unexpected warning %q", l.Warning())
	}
}

func TestLoad_FailureDegradesToEmpty(t *testing.T) {
	refs := &fakeRefs{err: &api.Error{Kind: api.KindTransport, Message: "connection refused"}}
	l := NewLoader(refs, zap.NewNop())

	l.Load(context.Background())

	if got := l.Options(); len(got) != 0 {
		t.Errorf("options after failure: got %v, want empty", got)
	}
	if l.Warning() == "" {
		t.Error("failed load must surface a warning banner")
	}
	if l.Pending() {
		t.Error("failed load still settles")
	}
}

func TestLoad_SingleFetchPerSession(t *testing.T) {
	refs := &fakeRefs{roles: []api.Role{{ID: "r1", Name: "Admin"}}}
	l := NewLoader(refs, zap.NewNop())

	l.Load(context.Background())
	l.Load(context.Background())
	l.Load(context.Background())

	if got := refs.callCount(); got != 1 {
		t.Errorf("fetch count: got %d, want 1", got)
	}
}

func TestLoad_NoDuplicateWhileInFlight(t *testing.T) {
	refs := &fakeRefs{roles: []api.Role{{ID: "r1", Name: "Admin"}}, block: make(chan struct{})}
	l := NewLoader(refs, zap.NewNop())

	done := make(chan struct{})
	go func() {
		l.Load(context.Background())
		close(done)
	}()

	// wait for the first call to be registered, then try again while it hangs
	for refs.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	l.Load(context.Background()) // must return immediately as a no-op
	close(refs.block)
	<-done

	if got := refs.callCount(); got != 1 {
		t.Errorf("fetch count: got %d, want 1", got)
	}
}
