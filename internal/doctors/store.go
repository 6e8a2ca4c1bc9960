package doctors

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

// ErrNotFound is returned when no doctor matches the lookup.
var ErrNotFound = errors.New("doctors: not found")

// Store defines doctor persistence operations.
type Store interface {
	Create(ctx context.Context, d *Doctor) error
	List(ctx context.Context) ([]Doctor, error)
	ListActive(ctx context.Context) ([]Doctor, error)
	ListActiveBySpecialty(ctx context.Context, specialty string) ([]Doctor, error)
	RecentActive(ctx context.Context, limit int64) ([]Doctor, error)
	DistinctActiveSpecialties(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
	GetActiveByEmail(ctx context.Context, email string) (*Doctor, error)
	Update(ctx context.Context, id string, d *Doctor) (*Doctor, error)
	Delete(ctx context.Context, id string) error
}

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a doctor store backed by the given collection.
func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Create(ctx context.Context, d *Doctor) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, d)
	if err != nil {
		return fmt.Errorf("doctors: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Doctor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.find(ctx, bson.M{}, opts)
}

func (s *MongoStore) ListActive(ctx context.Context) ([]Doctor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return s.find(ctx, bson.M{"isActive": true}, opts)
}

func (s *MongoStore) ListActiveBySpecialty(ctx context.Context, specialty string) ([]Doctor, error) {
	return s.find(ctx, bson.M{"specialty": specialty, "isActive": true}, options.Find())
}

// RecentActive returns the most recently created active doctors.
func (s *MongoStore) RecentActive(ctx context.Context, limit int64) ([]Doctor, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, bson.M{"isActive": true}, opts)
}

func (s *MongoStore) DistinctActiveSpecialties(ctx context.Context) ([]string, error) {
	raw, err := s.col.Distinct(ctx, "specialty", bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("doctors: distinct specialties: %w", err)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if sp, ok := v.(string); ok && sp != "" {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*Doctor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d Doctor
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("doctors: find by id: %w", err)
	}
	return &d, nil
}

func (s *MongoStore) GetActiveByEmail(ctx context.Context, email string) (*Doctor, error) {
	var d Doctor
	err := s.col.FindOne(ctx, bson.M{"email": email, "isActive": true}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("doctors: find by email: %w", err)
	}
	return &d, nil
}

func (s *MongoStore) Update(ctx context.Context, id string, d *Doctor) (*Doctor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"name":           d.Name,
		"title":          d.Title,
		"specialty":      d.Specialty,
		"experience":     d.Experience,
		"image":          d.Image,
		"phone":          d.Phone,
		"email":          d.Email,
		"education":      d.Education,
		"certifications": d.Certifications,
		"schedule":       d.Schedule,
		"isActive":       d.IsActive,
		"updatedAt":      time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Doctor
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("doctors: update: %w", err)
	}
	return &updated, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("doctors: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Doctor, error) {
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("doctors: find: %w", err)
	}
	defer cur.Close(ctx)
	var out []Doctor
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("doctors: decode: %w", err)
	}
	return out, nil
}
