package models

import (
	"time"

	"github.com/google/uuid"
)

// GNR provenance. A derived GNR is a pure projection of a PO computed
// for display; a manual one is filed by Accounts and persisted. One
// entity with a discriminant replaces the two incompatible record
// shapes the source system grew.
const (
	GNRDerived = "derived"
	GNRManual  = "manual"
)

// GNR is a Goods Note Receipt: the record of physical material receipt
// against a PO.
type GNR struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GNRNumber       string    `gorm:"size:30;not null;index" json:"gnrNumber"`
	PONumber        string    `gorm:"size:20;not null;index" json:"poNumber"`
	SupplierName    string    `json:"supplierName"`
	Material        string    `json:"material"`
	Quantity        string    `json:"quantity"`
	Unit            string    `json:"unit"`
	ReceivedDate    string    `gorm:"not null" json:"receivedDate"`
	ReceivedBy      string    `json:"receivedBy"`
	Condition       string    `json:"condition"`
	StorageLocation string    `json:"storageLocation"`
	VehicleNumber   string    `json:"vehicleNumber"`
	DriverName      string    `json:"driverName"`
	DriverPhone     string    `json:"driverPhone"`
	Source          string    `gorm:"size:10;not null" json:"source"`
	Remarks         *string   `json:"remarks,omitempty"`
	Status          string    `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedBy       string    `gorm:"size:64" json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
