package rolestore

import (
	"context"
	"errors"

	"github.com/dalemusser/helmdesk/internal/app/system/normalize"
	"github.com/dalemusser/helmdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("roles")}
}

// ErrNotFound is returned when no role matches the given slug.
var ErrNotFound = errors.New("role not found")

// Defaults is the role set seeded at startup.
var Defaults = []models.Role{
	{ID: "admin", Name: "Admin", Rank: 1},
	{ID: "manager", Name: "Manager", Rank: 2},
	{ID: "agent", Name: "Agent", Rank: 3},
}

// List returns all roles in rank order.
func (s *Store) List(ctx context.Context) ([]models.Role, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "rank", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var roles []models.Role
	if err := cur.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// GetByID loads a role by slug.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	if err := s.c.FindOne(ctx, bson.M{"_id": normalize.Role(id)}).Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// Seed upserts the given roles. Existing documents keep their slug but have
// name and rank refreshed, so renames ship without a migration.
func (s *Store) Seed(ctx context.Context, roles []models.Role) error {
	for _, role := range roles {
		_, err := s.c.UpdateOne(ctx,
			bson.M{"_id": role.ID},
			bson.M{"$set": bson.M{"name": role.Name, "rank": role.Rank}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
