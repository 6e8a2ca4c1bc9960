package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no admin matches the lookup.
var ErrNotFound = errors.New("admin: not found")

// Store defines admin account persistence.
type Store interface {
	Create(ctx context.Context, a *Admin) error
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
}

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates an admin store backed by the given collection.
func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Create(ctx context.Context, a *Admin) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Username = strings.ToLower(strings.TrimSpace(a.Username))
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Role == "" {
		a.Role = RoleStaff
	}
	res, err := s.col.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("admin: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

// GetByUsername looks up an account. Usernames are stored lowercased, so
// the lookup folds case too.
func (s *MongoStore) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	return s.findOne(ctx, bson.M{"username": strings.ToLower(strings.TrimSpace(username))})
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Admin, error) {
	var a Admin
	if err := s.col.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("admin: find one: %w", err)
	}
	return &a, nil
}
