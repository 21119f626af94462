package models

import (
	"time"

	"gorm.io/gorm"
)

type LeasePayment struct {
	gorm.Model
	LeaseID          uint                 `json:"leaseID" gorm:"index;not null"`
	DueDate          time.Time            `json:"dueDate" gorm:"index"`
	Amount           float64              `json:"amount"`
	Description      string               `json:"description"`
	Status           string               `json:"status" gorm:"type:varchar(20);default:Pending;index"` // Pending, Partially Paid, Paid, Overdue
	PaymentMethod    string               `json:"paymentMethod"`                                        // Cheque, Cash, Bank Transfer
	ChequeNumber     *string              `json:"chequeNumber"`
	ChequeImageURL   *string              `json:"chequeImageURL"`
	ExtensionStatus  *string              `json:"extensionStatus"` // Pending, Approved, Rejected
	RequestedDueDate *time.Time           `json:"requestedDueDate"`
	ExtensionReason  *string              `json:"extensionReason"`
	ManagerNotes     *string              `json:"managerNotes"`
	Transactions     []PaymentTransaction `json:"transactions" gorm:"constraint:OnDelete:CASCADE"`
}

// Installment status constants
const (
	PaymentStatusPending       = "Pending"
	PaymentStatusPartiallyPaid = "Partially Paid"
	PaymentStatusPaid          = "Paid"
	PaymentStatusOverdue       = "Overdue"
)

// Extension status constants
const (
	ExtensionStatusPending  = "Pending"
	ExtensionStatusApproved = "Approved"
	ExtensionStatusRejected = "Rejected"
)

// PaidAmount sums every recorded transaction against this installment.
func (p *LeasePayment) PaidAmount() float64 {
	var total float64
	for _, t := range p.Transactions {
		total += t.AmountPaid
	}
	return total
}

// IsSettled reports whether the installment needs no further collection.
func (p *LeasePayment) IsSettled() bool {
	return p.Status == PaymentStatusPaid
}
