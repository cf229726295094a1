package roles_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/helmdesk/internal/app/features/roles"
	"github.com/dalemusser/helmdesk/internal/testutil"
	"go.uber.org/zap"
)

func TestList_RankOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	// Insert out of rank order to make the sort observable.
	f.CreateRole(ctx, "agent", "Agent", 3)
	f.CreateRole(ctx, "admin", "Admin", 1)
	f.CreateRole(ctx, "manager", "Manager", 2)

	h := roles.NewHandler(db, zap.NewNop())
	rec := httptest.NewRecorder()
	h.List(rec, testutil.NewRequest(http.MethodGet, "/api/roles"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []string{"admin", "manager", "agent"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d = %q, want %q", i, got[i].ID, id)
		}
	}
	if got[0].Name != "Admin" {
		t.Fatalf("name = %q, want %q", got[0].Name, "Admin")
	}
}

func TestList_EmptyIsJSONArray(t *testing.T) {
	db := testutil.SetupTestDB(t)

	h := roles.NewHandler(db, zap.NewNop())
	rec := httptest.NewRecorder()
	h.List(rec, testutil.NewRequest(http.MethodGet, "/api/roles"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if body := rec.Body.String(); body != "[]\n" && body != "[]" {
		t.Fatalf("body = %q, want an empty JSON array", body)
	}
}
