package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted by the accounts form.
var PaymentMethods = []string{"Bank Transfer", "Cheque", "Cash", "UPI"}

// ValidPaymentMethod reports whether m is an accepted method.
func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// AccountsPayment is a payment record filed against a PO. This is pure
// record-keeping: there is no Pending/Failed life cycle, every record is
// Processed on creation.
type AccountsPayment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PONumber      string    `gorm:"size:20;not null;index" json:"poNumber"`
	SupplierName  string    `json:"supplierName"`
	Material      string    `json:"material"`
	Amount        string    `gorm:"not null" json:"amount"`
	PaymentMethod string    `gorm:"size:20;not null" json:"paymentMethod"`
	PaymentDate   FormTime  `gorm:"not null" json:"paymentDate"`
	Remarks       *string   `json:"remarks,omitempty"`
	Status        string    `gorm:"size:20;not null;default:'Processed'" json:"status"`
	CreatedBy     string    `gorm:"size:64;not null" json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
