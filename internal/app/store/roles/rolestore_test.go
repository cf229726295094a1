package rolestore_test

import (
	"errors"
	"testing"

	rolestore "github.com/dalemusser/helmdesk/internal/app/store/roles"
	"github.com/dalemusser/helmdesk/internal/testutil"
)

func TestStore_Seed_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Seed(ctx, rolestore.Defaults); err != nil {
		t.Fatalf("first Seed failed: %v", err)
	}
	if err := store.Seed(ctx, rolestore.Defaults); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	roles, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(roles) != len(rolestore.Defaults) {
		t.Errorf("expected %d roles, got %d", len(rolestore.Defaults), len(roles))
	}
}

func TestStore_List_RankOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Seed(ctx, rolestore.Defaults); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	roles, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i := 1; i < len(roles); i++ {
		if roles[i-1].Rank > roles[i].Rank {
			t.Errorf("roles out of rank order: %+v", roles)
		}
	}
	if roles[0].ID != "admin" {
		t.Errorf("first role: got %q, want admin", roles[0].ID)
	}
}

func TestStore_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Seed(ctx, rolestore.Defaults); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	role, err := store.GetByID(ctx, "  Manager ")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if role.Name != "Manager" {
		t.Errorf("unexpected role: %+v", role)
	}

	if _, err := store.GetByID(ctx, "nonesuch"); !errors.Is(err, rolestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
