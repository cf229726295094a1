package leadstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/helmdesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/helmdesk/internal/app/system/normalize"
	"github.com/dalemusser/helmdesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("leads")}
}

// ErrNotFound is returned when no lead matches the given id.
var ErrNotFound = errors.New("lead not found")

// List returns all leads, newest first.
func (s *Store) List(ctx context.Context) ([]models.Lead, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var leads []models.Lead
	if err := cur.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetByID loads a lead by its UUID.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&lead); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// NewLead holds the fields accepted when capturing a lead.
type NewLead struct {
	FullName string
	Email    string
	Phone    string
	Company  string
	Note     string
	Source   string
	OwnerID  string
}

// Create inserts a new lead. The note is sanitized here so no markup from a
// web form or import ever reaches the database unchecked.
func (s *Store) Create(ctx context.Context, n NewLead) (models.Lead, error) {
	now := time.Now().UTC()
	lead := models.Lead{
		ID:         uuid.NewString(),
		FullName:   normalize.Name(n.FullName),
		FullNameCI: text.Fold(normalize.Name(n.FullName)),
		Email:      normalize.Email(n.Email),
		Phone:      normalize.Phone(n.Phone),
		Company:    normalize.Name(n.Company),
		Note:       htmlsanitize.Sanitize(n.Note),
		Source:     normalize.Source(n.Source),
		OwnerID:    n.OwnerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.c.InsertOne(ctx, lead); err != nil {
		return models.Lead{}, err
	}
	return lead, nil
}

// LeadUpdate holds the fields that can be rewritten on a lead.
type LeadUpdate struct {
	FullName string
	Email    string
	Phone    string
	Company  string
	Note     string
	Source   string
	OwnerID  string
}

// Update rewrites a lead and returns the updated document.
func (s *Store) Update(ctx context.Context, id string, upd LeadUpdate) (models.Lead, error) {
	set := bson.M{
		"full_name":    normalize.Name(upd.FullName),
		"full_name_ci": text.Fold(normalize.Name(upd.FullName)),
		"email":        normalize.Email(upd.Email),
		"phone":        normalize.Phone(upd.Phone),
		"company":      normalize.Name(upd.Company),
		"note":         htmlsanitize.Sanitize(upd.Note),
		"source":       normalize.Source(upd.Source),
		"owner_id":     upd.OwnerID,
		"updated_at":   time.Now().UTC(),
	}

	var lead models.Lead
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Lead{}, ErrNotFound
		}
		return models.Lead{}, err
	}
	return lead, nil
}

// Delete removes a lead by id. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
