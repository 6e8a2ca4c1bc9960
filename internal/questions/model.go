package questions

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question statuses.
const (
	StatusPending  = "pending"
	StatusAnswered = "answered"
	StatusClosed   = "closed"
)

// ValidStatus reports whether s is a known question status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAnswered, StatusClosed:
		return true
	}
	return false
}

// Question is a free-form question submitted through the public site.
type Question struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Phone     string             `bson:"phone" json:"phone"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer,omitempty" json:"answer,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
