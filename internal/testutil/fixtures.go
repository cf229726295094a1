package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/helmdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateRole inserts a role with the given slug, display name, and rank.
func (f *Fixtures) CreateRole(ctx context.Context, id, name string, rank int) models.Role {
	f.t.Helper()

	role := models.Role{ID: id, Name: name, Rank: rank}
	if _, err := f.db.Collection("roles").InsertOne(ctx, role); err != nil {
		f.t.Fatalf("failed to create test role: %v", err)
	}
	return role
}

// DefaultRoles inserts the standard role set and returns it in rank order.
func (f *Fixtures) DefaultRoles(ctx context.Context) []models.Role {
	f.t.Helper()
	return []models.Role{
		f.CreateRole(ctx, "admin", "Admin", 1),
		f.CreateRole(ctx, "manager", "Manager", 2),
		f.CreateRole(ctx, "agent", "Agent", 3),
	}
}

// CreateUser inserts a user with a bcrypt hash of the given password.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, roleID, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		RoleID:       roleID,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin inserts an admin user with the password "Testpass1".
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "admin", "Testpass1")
}

// CreateLead inserts a lead with the given fields.
func (f *Fixtures) CreateLead(ctx context.Context, fullName, email, note string) models.Lead {
	f.t.Helper()

	now := time.Now().UTC()
	lead := models.Lead{
		ID:         uuid.NewString(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Note:       note,
		Source:     "web",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("leads").InsertOne(ctx, lead); err != nil {
		f.t.Fatalf("failed to create test lead: %v", err)
	}
	return lead
}
