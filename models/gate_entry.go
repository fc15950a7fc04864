package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Vehicle check outcomes recorded at the gate.
const (
	CheckPassed  = "Passed"
	CheckFailed  = "Failed"
	CheckPending = "Pending"
)

// Vehicle sub-record statuses.
const (
	VehicleActive = "Active"
	VehicleClosed = "Closed"
)

// VehicleEntry is one vehicle's record inside a gate-entry document.
// Entry and out times are kept as the raw form strings; ordering checks
// parse them leniently (see ParseFormTime).
type VehicleEntry struct {
	VehicleNumber string  `json:"vehicleNumber"`
	DriverName    string  `json:"driverName"`
	DriverPhone   string  `json:"driverPhone"`
	EntryTime     string  `json:"entryTime"`
	OutTime       *string `json:"outTime,omitempty"`
	VehicleChecks string  `json:"vehicleChecks"`
	Remarks       string  `json:"remarks"`
	Status        string  `json:"status"`
}

// VehicleMap stores vehicles keyed by vehicle number as a single JSONB
// value. Writes replace a vehicle's sub-record wholesale; there is no
// field-level merge.
type VehicleMap map[string]VehicleEntry

// Scan implements the sql.Scanner interface for VehicleMap.
func (m *VehicleMap) Scan(value interface{}) error {
	if value == nil {
		*m = VehicleMap{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		*m = VehicleMap{}
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// Value implements the driver.Valuer interface for VehicleMap.
func (m VehicleMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(VehicleMap{})
	}
	return json.Marshal(m)
}

// GormDataType defines the data type for GORM.
func (VehicleMap) GormDataType() string {
	return "jsonb"
}

// GateEntry is keyed by the PO number itself rather than an opaque id:
// one document per PO, vehicles accumulating into the map. The keying
// gives O(1) lookup by PO and relies on PO-number uniqueness being
// verified at order creation.
type GateEntry struct {
	PONumber     string     `gorm:"size:20;primaryKey" json:"poNumber"`
	SupplierName string     `json:"supplierName"`
	Material     string     `json:"material"`
	Vehicles     VehicleMap `gorm:"type:jsonb;not null" json:"vehicles"`
	Status       string     `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedBy    string     `gorm:"size:64;not null" json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
