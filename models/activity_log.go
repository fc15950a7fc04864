package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLog is an append-only record of a mutating action. It is
// written best-effort after the primary write and never read back by
// the operation that produced it. Metadata carries optional structured
// context (the PO number, vehicle number) for later filtering.
type ActivityLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Action    string         `gorm:"size:100;not null" json:"action"`
	UserID    string         `gorm:"size:64;not null" json:"userId"`
	UserRole  string         `gorm:"size:30;not null" json:"userRole"`
	Details   string         `gorm:"type:text" json:"details"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
}
