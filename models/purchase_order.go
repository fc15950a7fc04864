package models

import (
	"time"

	"github.com/google/uuid"
)

// POStatus is the approval axis of a purchase order.
type POStatus string

const (
	POPending    POStatus = "Pending"
	POApproved   POStatus = "Approved"
	PORejected   POStatus = "Rejected"
	PODispatched POStatus = "Dispatched"
)

// Terminal reports whether no further approval-axis transition is legal.
func (s POStatus) Terminal() bool {
	return s == PORejected || s == PODispatched
}

// WorkflowStage is the side-channel axis set by the creator after the
// order is filed. It is deliberately separate from POStatus: the source
// system overloaded one string for both and the two kept colliding.
type WorkflowStage string

const (
	StageCreated  WorkflowStage = "Created"
	StageSentToWP WorkflowStage = "Sent to WP"
)

// PurchaseOrder is the central workflow entity. PONumber is the business
// key every satellite record refers to; commercial fields are owned by
// the creating Purchase Team user and are never rewritten by other roles.
type PurchaseOrder struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PONumber        string        `gorm:"size:20;uniqueIndex;not null" json:"poNumber"`
	SupplierName    string        `gorm:"not null" json:"supplierName"`
	Material        string        `gorm:"not null" json:"material"`
	Quantity        string        `gorm:"not null" json:"quantity"`
	RatePerQuantity string        `gorm:"not null" json:"ratePerQuantity"`
	RatePerKG       string        `gorm:"not null" json:"ratePerKG"`
	HSNSACCode      string        `gorm:"not null" json:"hsnSacCode"`
	GST             string        `gorm:"not null" json:"gst"`
	TaxAmount       *string       `json:"taxAmount,omitempty"`
	OrderDate       string        `gorm:"not null" json:"orderDate"`
	DeliverDate     string        `gorm:"not null" json:"deliverDate"`
	Remark          *string       `json:"remark,omitempty"`
	Status          POStatus      `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	WorkflowStage   WorkflowStage `gorm:"size:20;not null;default:'Created'" json:"workflowStage"`
	ManagerRemarks  *string       `json:"managerRemarks,omitempty"`
	ApprovedBy      *string       `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time    `json:"approvedAt,omitempty"`
	DispatchedAt    *time.Time    `json:"dispatchedAt,omitempty"`
	SentToWPAt      *time.Time    `json:"sentToWPAt,omitempty"`
	CreatedBy       string        `gorm:"size:64;index;not null" json:"createdBy"`

	// Version guards concurrent transitions: every mutation is a
	// compare-and-swap on this column.
	Version int `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
