package doctors

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleEntry is one recurring working block for a doctor.
type ScheduleEntry struct {
	Day       string `bson:"day" json:"day"`
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// Doctor is a clinic doctor profile. Specialty is free text: distinct
// spellings are distinct categories, no canonicalization happens anywhere.
type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Title          string             `bson:"title" json:"title"`
	Specialty      string             `bson:"specialty" json:"specialty"`
	Experience     string             `bson:"experience" json:"experience"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	Education      string             `bson:"education,omitempty" json:"education,omitempty"`
	Certifications []string           `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Schedule       []ScheduleEntry    `bson:"schedule,omitempty" json:"schedule,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
