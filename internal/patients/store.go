package patients

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = errors.New("patients: not found")

// Page is one page of patient search results.
type Page struct {
	Items      []Patient `json:"patients"`
	Total      int64     `json:"total"`
	TotalPages int64     `json:"totalPages"`
	Page       int64     `json:"page"`
}

// Store defines patient persistence operations.
type Store interface {
	Create(ctx context.Context, p *Patient) error
	Search(ctx context.Context, query string, page, limit int64) (*Page, error)
	CountActive(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	GetByPhone(ctx context.Context, phone string) (*Patient, error)
	Update(ctx context.Context, id string, p *Patient) (*Patient, error)
	AppendMedicalRecord(ctx context.Context, phone string, rec MedicalRecord) error
	Delete(ctx context.Context, id string) error
}

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a patient store backed by the given collection.
func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Create(ctx context.Context, p *Patient) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.MedicalHistory == nil {
		p.MedicalHistory = []MedicalRecord{}
	}
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("patients: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// Search matches the query against full name, phone and email with a
// case-insensitive substring match, newest first.
func (s *MongoStore) Search(ctx context.Context, query string, page, limit int64) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	filter := bson.M{}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"fullName": pattern},
			bson.M{"phone": pattern},
			bson.M{"email": pattern},
		}
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("patients: count: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("patients: find: %w", err)
	}
	items := []Patient{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("patients: decode: %w", err)
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &Page{Items: items, Total: total, TotalPages: totalPages, Page: page}, nil
}

func (s *MongoStore) CountActive(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"isActive": true})
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) GetByPhone(ctx context.Context, phone string) (*Patient, error) {
	return s.findOne(ctx, bson.M{"phone": phone})
}

func (s *MongoStore) Update(ctx context.Context, id string, p *Patient) (*Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	p.ID = oid
	p.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": oid}, p)
	if err != nil {
		return nil, fmt.Errorf("patients: replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return p, nil
}

// AppendMedicalRecord pushes a visit entry onto the patient with the given
// phone number.
func (s *MongoStore) AppendMedicalRecord(ctx context.Context, phone string, rec MedicalRecord) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{
		"$push": bson.M{"medicalHistory": rec},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("patients: push history: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("patients: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Patient, error) {
	var p Patient
	if err := s.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("patients: find one: %w", err)
	}
	return &p, nil
}
