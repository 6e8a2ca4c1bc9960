package appointments

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses. An appointment is created pending and moved by
// staff action; completed appointments feed the patient record side effect.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

var phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)

// ValidPhone reports whether p is a 10-11 digit phone number.
func ValidPhone(p string) bool {
	return phonePattern.MatchString(p)
}

// Appointment is a booking request made through the public site.
// AppointmentTime stays a free-text "HH:MM" string; only the leading hour
// is ever parsed (peak-hour analytics).
type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName        string             `bson:"fullName" json:"fullName"`
	Phone           string             `bson:"phone" json:"phone"`
	Email           string             `bson:"email,omitempty" json:"email,omitempty"`
	Specialty       string             `bson:"specialty" json:"specialty"`
	DoctorID        primitive.ObjectID `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	DoctorName      string             `bson:"doctorName,omitempty" json:"doctorName,omitempty"`
	AppointmentDate time.Time          `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string             `bson:"appointmentTime" json:"appointmentTime"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
