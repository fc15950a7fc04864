package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StorageLocations are the fixed warehouse bays L1..L10.
var StorageLocations = func() []string {
	locs := make([]string, 10)
	for i := range locs {
		locs[i] = fmt.Sprintf("L%d", i+1)
	}
	return locs
}()

// ValidStorageLocation reports whether loc is one of L1..L10.
func ValidStorageLocation(loc string) bool {
	for _, l := range StorageLocations {
		if l == loc {
			return true
		}
	}
	return false
}

// UnloadingRecord logs material moved off a vehicle into a storage bay.
type UnloadingRecord struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleNumber      string    `gorm:"not null;index" json:"vehicleNumber"`
	PONumber           string    `gorm:"size:20;not null;index" json:"poNumber"`
	Material           string    `json:"material"`
	SupplierName       string    `json:"supplierName"`
	StorageLocation    string    `gorm:"size:5;not null" json:"storageLocation"`
	QuantityUnloaded   string    `gorm:"not null" json:"quantityUnloaded"`
	UnloadingStartTime FormTime  `gorm:"not null" json:"unloadingStartTime"`
	UnloadingEndTime   FormTime  `gorm:"not null" json:"unloadingEndTime"`
	Remarks            *string   `json:"remarks,omitempty"`
	Status             string    `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedBy          string    `gorm:"size:64;not null" json:"createdBy"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
