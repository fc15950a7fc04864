package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Measurement options for a QC result. Exactly one numeric field is
// authoritative per record, selected by MeasurementOption; the other
// must stay empty.
const (
	MeasureWeight   = "weight"
	MeasureQuantity = "quantity"
	MeasureNone     = "none"
)

// QCResult records a quality-control test outcome for a PO's material.
type QCResult struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PONumber          string         `gorm:"size:20;not null;index" json:"poNumber"`
	Material          string         `json:"material"`
	SupplierName      string         `json:"supplierName"`
	TestDate          FormTime       `gorm:"not null" json:"testDate"`
	TestResult        string         `gorm:"size:20;not null;default:'Pending'" json:"testResult"`
	TestParameters    pq.StringArray `gorm:"type:text[]" json:"testParameters,omitempty"`
	MeasurementOption string         `gorm:"size:10;not null;default:'none'" json:"measurementOption"`
	MeasuredWeight    *string        `json:"measuredWeight,omitempty"`
	MeasuredQuantity  *string        `json:"measuredQuantity,omitempty"`
	Remarks           *string        `json:"remarks,omitempty"`
	Status            string         `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedBy         string         `gorm:"size:64;not null" json:"createdBy"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}
