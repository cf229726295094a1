package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/helmdesk/internal/app/system/validators"
	"github.com/dalemusser/helmdesk/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	// Second call should also succeed (idempotent)
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}

	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}
	for _, expected := range []string{"users", "roles", "leads"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestUsersValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Missing email, role_id, and password_hash - should fail
	_, err := db.Collection("users").InsertOne(ctx, bson.M{
		"full_name":    "Test User",
		"full_name_ci": "test user",
	})
	if err == nil {
		t.Error("expected validation error when inserting user without required fields")
	}
}

func TestUsersValidator_ValidUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("users").InsertOne(ctx, bson.M{
		"full_name":     "Test User",
		"full_name_ci":  "test user",
		"email":         "test@example.com",
		"role_id":       "agent",
		"password_hash": primitive.Binary{Data: []byte("not-a-real-hash")},
		"created_at":    time.Now(),
		"updated_at":    time.Now(),
	})
	if err != nil {
		t.Errorf("Insert valid user failed: %v", err)
	}
}

func TestRolesValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Missing rank - should fail
	_, err := db.Collection("roles").InsertOne(ctx, bson.M{
		"_id":  "admin",
		"name": "Admin",
	})
	if err == nil {
		t.Error("expected validation error when inserting role without rank")
	}
}

func TestRolesValidator_ValidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("roles").InsertOne(ctx, bson.M{
		"_id":  "admin",
		"name": "Admin",
		"rank": 1,
	})
	if err != nil {
		t.Errorf("Insert valid role failed: %v", err)
	}
}

func TestLeadsValidator_RejectsNonUUIDID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("leads").InsertOne(ctx, bson.M{
		"_id":          "short-id",
		"full_name":    "Sam Prospect",
		"full_name_ci": "sam prospect",
		"email":        "sam@example.com",
	})
	if err == nil {
		t.Error("expected validation error for a lead id that is not a UUID")
	}
}

func TestLeadsValidator_RejectsUnknownSource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("leads").InsertOne(ctx, bson.M{
		"_id":          uuid.NewString(),
		"full_name":    "Sam Prospect",
		"full_name_ci": "sam prospect",
		"email":        "sam@example.com",
		"source":       "carrier-pigeon",
	})
	if err == nil {
		t.Error("expected validation error for an unknown lead source")
	}
}

func TestLeadsValidator_ValidLead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	for _, source := range []string{"web", "referral", "import", ""} {
		_, err := db.Collection("leads").InsertOne(ctx, bson.M{
			"_id":          uuid.NewString(),
			"full_name":    "Sam Prospect",
			"full_name_ci": "sam prospect",
			"email":        "sam@example.com",
			"source":       source,
			"created_at":   time.Now(),
		})
		if err != nil {
			t.Errorf("Insert valid lead with source %q failed: %v", source, err)
		}
	}
}
