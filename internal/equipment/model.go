package equipment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories of clinic equipment.
const (
	CategoryDiagnostic = "diagnostic"
	CategoryTreatment  = "treatment"
	CategorySurgical   = "surgical"
	CategoryMonitoring = "monitoring"
	CategoryLaboratory = "laboratory"
	CategoryOther      = "other"
)

// Operational statuses.
const (
	StatusOperational = "operational"
	StatusMaintenance = "maintenance"
	StatusRepair      = "repair"
	StatusRetired     = "retired"
)

// ValidCategory reports whether c is a known equipment category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryDiagnostic, CategoryTreatment, CategorySurgical,
		CategoryMonitoring, CategoryLaboratory, CategoryOther:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known equipment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusOperational, StatusMaintenance, StatusRepair, StatusRetired:
		return true
	}
	return false
}

// MaintenanceRecord is one entry in an item's maintenance log.
type MaintenanceRecord struct {
	Date                time.Time `bson:"date" json:"date"`
	Type                string    `bson:"type" json:"type"`
	PerformedBy         string    `bson:"performedBy" json:"performedBy"`
	Notes               string    `bson:"notes,omitempty" json:"notes,omitempty"`
	NextMaintenanceDate time.Time `bson:"nextMaintenanceDate,omitempty" json:"nextMaintenanceDate,omitempty"`
}

// Item is one piece of clinic equipment.
type Item struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Category       string              `bson:"category" json:"category"`
	Manufacturer   string              `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Model          string              `bson:"model,omitempty" json:"model,omitempty"`
	SerialNumber   string              `bson:"serialNumber,omitempty" json:"serialNumber,omitempty"`
	PurchaseDate   *time.Time          `bson:"purchaseDate,omitempty" json:"purchaseDate,omitempty"`
	WarrantyExpiry *time.Time          `bson:"warrantyExpiry,omitempty" json:"warrantyExpiry,omitempty"`
	Status         string              `bson:"status" json:"status"`
	Location       string              `bson:"location,omitempty" json:"location,omitempty"`
	Maintenance    []MaintenanceRecord `bson:"maintenanceSchedule,omitempty" json:"maintenanceSchedule,omitempty"`
	Specifications string              `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Image          string              `bson:"image,omitempty" json:"image,omitempty"`
	Cost           float64             `bson:"cost,omitempty" json:"cost,omitempty"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
