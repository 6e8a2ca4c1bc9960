package appointments

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

// ErrNotFound is returned when no appointment matches the lookup.
var ErrNotFound = errors.New("appointments: not found")

// Page is one page of an admin appointment listing.
type Page struct {
	Items      []Appointment
	Total      int64
	TotalPages int64
	Page       int64
}

// Store defines appointment persistence operations.
type Store interface {
	Create(ctx context.Context, a *Appointment) error
	List(ctx context.Context, limit int64) ([]Appointment, error)
	ListPage(ctx context.Context, status string, page, limit int64) (*Page, error)
	ListByPhone(ctx context.Context, phone string) ([]Appointment, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]Appointment, error)
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]Appointment, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountDoctorConflicts(ctx context.Context, doctorID primitive.ObjectID, date time.Time, timeOfDay string) (int64, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*Appointment, error)
	Delete(ctx context.Context, id string) error
}

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates an appointment store backed by the given collection.
func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Create(ctx context.Context, a *Appointment) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = StatusPending
	}
	res, err := s.col.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("appointments: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int64) ([]Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.find(ctx, bson.M{}, opts)
}

func (s *MongoStore) ListPage(ctx context.Context, status string, page, limit int64) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("appointments: count page: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	items, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return &Page{
		Items:      items,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		Page:       page,
	}, nil
}

func (s *MongoStore) ListByPhone(ctx context.Context, phone string) ([]Appointment, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "appointmentDate", Value: -1},
		{Key: "appointmentTime", Value: -1},
	})
	return s.find(ctx, bson.M{"phone": phone}, opts)
}

func (s *MongoStore) ListBySpecialty(ctx context.Context, specialty string) ([]Appointment, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "appointmentDate", Value: -1},
		{Key: "appointmentTime", Value: -1},
	})
	return s.find(ctx, bson.M{"specialty": specialty}, opts)
}

func (s *MongoStore) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]Appointment, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.find(ctx, filter, opts)
}

// CountCreatedBetween counts appointments created in [start, end).
func (s *MongoStore) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}})
	if err != nil {
		return 0, fmt.Errorf("appointments: count window: %w", err)
	}
	return n, nil
}

func (s *MongoStore) CountAll(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("appointments: count: %w", err)
	}
	return n, nil
}

func (s *MongoStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("appointments: count by status: %w", err)
	}
	return n, nil
}

// CountDoctorConflicts counts bookings holding the doctor at the same
// date and time slot. Cancelled and completed bookings do not block.
func (s *MongoStore) CountDoctorConflicts(ctx context.Context, doctorID primitive.ObjectID, date time.Time, timeOfDay string) (int64, error) {
	filter := bson.M{
		"doctorId":        doctorID,
		"appointmentDate": date,
		"appointmentTime": timeOfDay,
		"status":          bson.M{"$in": []string{StatusPending, StatusConfirmed}},
	}
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("appointments: count conflicts: %w", err)
	}
	return n, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var a Appointment
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: find by id: %w", err)
	}
	return &a, nil
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id, status string) (*Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Appointment
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: update status: %w", err)
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
		return fmt.Errorf("appointments: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Appointment, error) {
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("appointments: find: %w", err)
	}
	defer cur.Close(ctx)
	var out []Appointment
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("appointments: decode: %w", err)
	}
	return out, nil
}
