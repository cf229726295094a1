package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/helmdesk/internal/app/system/normalize"
	"github.com/dalemusser/helmdesk/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create or update a user
	// with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when no user matches the given id or email.
	ErrNotFound = errors.New("user not found")

	errBlankPassword = errors.New("password required")
)

// List returns all users ordered by folded full name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID loads a user by hex ObjectID. A malformed hex id is treated the
// same as a missing user.
func (s *Store) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// NewUser holds the fields accepted when creating a user. Password arrives
// in the clear and is bcrypt-hashed here; it is never stored as given.
type NewUser struct {
	FullName string
	Email    string
	Phone    string
	RoleID   string
	Password string
}

// Create inserts a new user after normalizing fields and hashing the
// password.
func (s *Store) Create(ctx context.Context, n NewUser) (models.User, error) {
	if n.Password == "" {
		return models.User{}, errBlankPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(n.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     normalize.Name(n.FullName),
		FullNameCI:   text.Fold(normalize.Name(n.FullName)),
		Email:        normalize.Email(n.Email),
		Phone:        normalize.Phone(n.Phone),
		RoleID:       normalize.Role(n.RoleID),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UserUpdate holds the fields that can be updated. A blank Password leaves
// the stored credential untouched.
type UserUpdate struct {
	FullName string
	Email    string
	Phone    string
	RoleID   string
	Password string
}

// Update rewrites a user's profile fields and, when a new password was
// supplied, its credential. The updated document is returned.
func (s *Store) Update(ctx context.Context, id string, upd UserUpdate) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}

	set := bson.M{
		"full_name":    normalize.Name(upd.FullName),
		"full_name_ci": text.Fold(normalize.Name(upd.FullName)),
		"email":        normalize.Email(upd.Email),
		"phone":        normalize.Phone(upd.Phone),
		"role_id":      normalize.Role(upd.RoleID),
		"updated_at":   time.Now().UTC(),
	}
	if upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		set["password_hash"] = hash
	}

	var u models.User
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Delete removes a user by id. Deleting an absent or malformed id is not an
// error; the count reports whether anything was removed.
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// VerifyPassword compares a clear-text password against the stored hash.
func VerifyPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}
