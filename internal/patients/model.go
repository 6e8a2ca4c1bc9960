package patients

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicalRecord is one visit entry in a patient's history.
type MedicalRecord struct {
	Date       time.Time `bson:"date" json:"date"`
	Diagnosis  string    `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Treatment  string    `bson:"treatment,omitempty" json:"treatment,omitempty"`
	DoctorName string    `bson:"doctorName,omitempty" json:"doctorName,omitempty"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// EmergencyContact is the person to call on the patient's behalf.
type EmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
}

// Patient is a clinic patient record. Phone is the natural key the portal
// logs in with.
type Patient struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FullName           string             `bson:"fullName" json:"fullName"`
	DateOfBirth        *time.Time         `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender             string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Phone              string             `bson:"phone" json:"phone"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	Address            string             `bson:"address,omitempty" json:"address,omitempty"`
	IDNumber           string             `bson:"idNumber,omitempty" json:"idNumber,omitempty"`
	InsuranceNumber    string             `bson:"insuranceNumber,omitempty" json:"insuranceNumber,omitempty"`
	MedicalHistory     []MedicalRecord    `bson:"medicalHistory" json:"medicalHistory"`
	Allergies          string             `bson:"allergies,omitempty" json:"allergies,omitempty"`
	CurrentMedications string             `bson:"currentMedications,omitempty" json:"currentMedications,omitempty"`
	EmergencyContact   *EmergencyContact  `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
