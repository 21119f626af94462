package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentTransaction struct {
	gorm.Model
	LeasePaymentID uint      `json:"leasePaymentID" gorm:"index;not null"`
	AmountPaid     float64   `json:"amountPaid"`
	PaymentDate    time.Time `json:"paymentDate"`
	PaymentMethod  string    `json:"paymentMethod"`
	Notes          string    `json:"notes"`
	DocumentURL    string    `json:"documentURL"`
}
