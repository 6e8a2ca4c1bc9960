package equipment

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

// ErrNotFound is returned when no equipment item matches the lookup.
var ErrNotFound = errors.New("equipment: not found")

// Filter narrows equipment listings. Zero values match everything.
type Filter struct {
	Category string
	Status   string
}

// Store defines equipment persistence operations.
type Store interface {
	Create(ctx context.Context, it *Item) error
	List(ctx context.Context, f Filter) ([]Item, error)
	RecentActive(ctx context.Context, limit int64) ([]Item, error)
	CountActive(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, id string, it *Item) (*Item, error)
	Delete(ctx context.Context, id string) error
}

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates an equipment store backed by the given collection.
func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Create(ctx context.Context, it *Item) error {
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	if it.Status == "" {
		it.Status = StatusOperational
	}
	res, err := s.col.InsertOne(ctx, it)
	if err != nil {
		return fmt.Errorf("equipment: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		it.ID = oid
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, f Filter) ([]Item, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("equipment: find: %w", err)
	}
	defer cur.Close(ctx)
	var out []Item
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("equipment: decode: %w", err)
	}
	return out, nil
}

// RecentActive returns the most recently created active items.
func (s *MongoStore) RecentActive(ctx context.Context, limit int64) ([]Item, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cur, err := s.col.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("equipment: find recent: %w", err)
	}
	defer cur.Close(ctx)
	var out []Item
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("equipment: decode: %w", err)
	}
	return out, nil
}

func (s *MongoStore) CountActive(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		return 0, fmt.Errorf("equipment: count active: %w", err)
	}
	return n, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var it Item
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("equipment: find by id: %w", err)
	}
	return &it, nil
}

func (s *MongoStore) Update(ctx context.Context, id string, it *Item) (*Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"name":                it.Name,
		"category":            it.Category,
		"manufacturer":        it.Manufacturer,
		"model":               it.Model,
		"serialNumber":        it.SerialNumber,
		"purchaseDate":        it.PurchaseDate,
		"warrantyExpiry":      it.WarrantyExpiry,
		"status":              it.Status,
		"location":            it.Location,
		"maintenanceSchedule": it.Maintenance,
		"specifications":      it.Specifications,
		"image":               it.Image,
		"cost":                it.Cost,
		"isActive":            it.IsActive,
		"updatedAt":           time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Item
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("equipment: update: %w", err)
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
		return fmt.Errorf("equipment: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
