package questions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no question matches the lookup.
var ErrNotFound = errors.New("questions: not found")

// Store defines question persistence operations.
type Store interface {
	Create(ctx context.Context, q *Question) error
	List(ctx context.Context, status string, limit int64) ([]Question, error)
	GetByID(ctx context.Context, id string) (*Question, error)
	SetAnswer(ctx context.Context, id, answer, status string) (*Question, error)
	Delete(ctx context.Context, id string) error
}

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a question store backed by the given collection.
func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Create(ctx context.Context, q *Question) error {
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.Status == "" {
		q.Status = StatusPending
	}
	res, err := s.col.InsertOne(ctx, q)
	if err != nil {
		return fmt.Errorf("questions: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = oid
	}
	return nil
}

// List returns questions newest first, optionally filtered by status.
func (s *MongoStore) List(ctx context.Context, status string, limit int64) ([]Question, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("questions: find: %w", err)
	}
	items := []Question{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("questions: decode: %w", err)
	}
	return items, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var q Question
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("questions: find one: %w", err)
	}
	return &q, nil
}

// SetAnswer records the answer text and moves the question to the given
// status.
func (s *MongoStore) SetAnswer(ctx context.Context, id, answer, status string) (*Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"answer":    answer,
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var q Question
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("questions: update: %w", err)
	}
	return &q, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("questions: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
