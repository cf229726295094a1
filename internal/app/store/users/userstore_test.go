package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/helmdesk/internal/app/store/users"
	"github.com/dalemusser/helmdesk/internal/app/system/indexes"
	"github.com/dalemusser/helmdesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, userstore.NewUser{
		FullName: "  Jane Doe ",
		Email:    "Jane@Example.COM",
		Phone:    "+1 555 0100",
		RoleID:   "Admin",
		Password: "Abcdef1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.FullName != "Jane Doe" {
		t.Errorf("full name: got %q", created.FullName)
	}
	if created.FullNameCI != "jane doe" {
		t.Errorf("folded name: got %q", created.FullNameCI)
	}
	if created.Email != "jane@example.com" {
		t.Errorf("email: got %q", created.Email)
	}
	if created.Phone != "+15550100" {
		t.Errorf("phone: got %q", created.Phone)
	}
	if created.RoleID != "admin" {
		t.Errorf("role: got %q", created.RoleID)
	}
	if len(created.PasswordHash) == 0 {
		t.Error("expected a password hash")
	}
	if string(created.PasswordHash) == "Abcdef1" {
		t.Error("password must not be stored in the clear")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_BlankPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, userstore.NewUser{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		RoleID:   "admin",
	})
	if err == nil {
		t.Fatal("expected an error for a blank password")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := userstore.New(db)

	first := userstore.NewUser{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		RoleID:   "admin",
		Password: "Abcdef1",
	}
	if _, err := store.Create(ctx, first); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same email, different casing: the unique index sees the normalized form.
	second := first
	second.FullName = "Jane Clone"
	second.Email = "JANE@example.com"
	_, err := store.Create(ctx, second)
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateUser(ctx, "Jane Doe", "jane@example.com", "manager", "Abcdef1")

	got, err := store.GetByID(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "jane@example.com" || got.RoleID != "manager" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		id   string
	}{
		{"missing", primitive.NewObjectID().Hex()},
		{"malformed", "not-a-hex-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.GetByID(ctx, tt.id)
			if !errors.Is(err, userstore.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "Jane Doe", "jane@example.com", "admin", "Abcdef1")

	got, err := store.GetByEmail(ctx, "  JANE@Example.com ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.FullName != "Jane Doe" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateUser(ctx, "Jane Doe", "jane@example.com", "admin", "Abcdef1")
	originalHash := created.PasswordHash

	updated, err := store.Update(ctx, created.ID.Hex(), userstore.UserUpdate{
		FullName: "Jane Q. Doe",
		Email:    "jane@example.com",
		Phone:    "+15550100",
		RoleID:   "manager",
		// blank password: credential untouched
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.FullName != "Jane Q. Doe" || updated.RoleID != "manager" {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if string(updated.PasswordHash) != string(originalHash) {
		t.Error("blank password must leave the stored hash untouched")
	}
	if !userstore.VerifyPassword(&updated, "Abcdef1") {
		t.Error("original password must still verify")
	}
}

func TestStore_Update_RotatesPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateUser(ctx, "Jane Doe", "jane@example.com", "admin", "Abcdef1")

	updated, err := store.Update(ctx, created.ID.Hex(), userstore.UserUpdate{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		RoleID:   "admin",
		Password: "Newpass2",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if !userstore.VerifyPassword(&updated, "Newpass2") {
		t.Error("new password must verify")
	}
	if userstore.VerifyPassword(&updated, "Abcdef1") {
		t.Error("old password must no longer verify")
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, primitive.NewObjectID().Hex(), userstore.UserUpdate{
		FullName: "Ghost",
		Email:    "ghost@example.com",
		RoleID:   "admin",
	})
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fx.CreateUser(ctx, "Jane Doe", "jane@example.com", "admin", "Abcdef1")

	n, err := store.Delete(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted count: got %d, want 1", n)
	}

	// Deleting again converges silently.
	n, err = store.Delete(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second deleted count: got %d, want 0", n)
	}
}

func TestStore_List_SortedByFoldedName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "zoe", "zoe@example.com", "agent", "Abcdef1")
	fx.CreateUser(ctx, "Álvaro", "alvaro@example.com", "agent", "Abcdef1")
	fx.CreateUser(ctx, "Bob", "bob@example.com", "agent", "Abcdef1")

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	// Folded sort: Álvaro before Bob before zoe, regardless of case/accents.
	if users[0].FullName != "Álvaro" || users[1].FullName != "Bob" || users[2].FullName != "zoe" {
		t.Errorf("unexpected order: %q, %q, %q", users[0].FullName, users[1].FullName, users[2].FullName)
	}
}
