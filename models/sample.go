package models

import (
	"time"

	"github.com/google/uuid"
)

// SampleRecord is a material sample pulled for testing, keyed loosely to
// the PO by number (string match, no foreign key).
type SampleRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PONumber       string    `gorm:"size:20;not null;index" json:"poNumber"`
	Material       string    `json:"material"`
	SupplierName   string    `json:"supplierName"`
	SampleQuantity string    `gorm:"not null" json:"sampleQuantity"`
	CollectionDate FormTime  `gorm:"not null" json:"collectionDate"`
	TestStatus     string    `gorm:"size:20;not null;default:'Pending'" json:"testStatus"`
	Remarks        *string   `json:"remarks,omitempty"`
	Status         string    `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedBy      string    `gorm:"size:64;not null" json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
