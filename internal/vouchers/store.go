package vouchers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no voucher matches the lookup.
var ErrNotFound = errors.New("vouchers: not found")

// ErrDuplicateCode is returned when the code already exists.
var ErrDuplicateCode = errors.New("vouchers: duplicate code")

// Store defines voucher persistence operations.
type Store interface {
	Create(ctx context.Context, v *Voucher) error
	List(ctx context.Context) ([]Voucher, error)
	ListActive(ctx context.Context, limit int64) ([]Voucher, error)
	GetByCode(ctx context.Context, code string) (*Voucher, error)
}

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a voucher store backed by the given collection.
func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Create(ctx context.Context, v *Voucher) error {
	now := time.Now().UTC()
	v.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	v.CreatedAt = now
	v.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, v)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("vouchers: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Voucher, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("vouchers: find: %w", err)
	}
	items := []Voucher{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("vouchers: decode: %w", err)
	}
	return items, nil
}

// ListActive returns up to limit active, unexpired vouchers.
func (s *MongoStore) ListActive(ctx context.Context, limit int64) ([]Voucher, error) {
	filter := bson.M{
		"isActive":   true,
		"expiryDate": bson.M{"$gte": time.Now().UTC()},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "expiryDate", Value: 1}}).
		SetLimit(limit)
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("vouchers: find active: %w", err)
	}
	items := []Voucher{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("vouchers: decode: %w", err)
	}
	return items, nil
}

// GetByCode looks up a voucher by code, case-insensitively.
func (s *MongoStore) GetByCode(ctx context.Context, code string) (*Voucher, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	var v Voucher
	if err := s.col.FindOne(ctx, bson.M{"code": code}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("vouchers: find one: %w", err)
	}
	return &v, nil
}
