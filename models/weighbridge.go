package models

import (
	"time"

	"github.com/google/uuid"
)

// WeighbridgeRecord captures before/after weights for a vehicle serving
// a PO. NetWeight is derived (before - after, rounded to 2 decimals) and
// is recomputed server-side on every write; it is never taken from the
// request payload.
type WeighbridgeRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleNumber string    `gorm:"not null;index" json:"vehicleNumber"`
	PONumber      string    `gorm:"size:20;not null;index" json:"poNumber"`
	Material      string    `json:"material"`
	SupplierName  string    `json:"supplierName"`
	WeightBefore  string    `gorm:"not null" json:"weightBefore"`
	WeightAfter   string    `gorm:"not null" json:"weightAfter"`
	NetWeight     float64   `gorm:"not null" json:"netWeight"`
	WeighingDate  FormTime  `gorm:"not null" json:"weighingDate"`
	Remarks       *string   `json:"remarks,omitempty"`
	Status        string    `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedBy     string    `gorm:"size:64;not null" json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
