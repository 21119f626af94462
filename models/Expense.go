package models

import (
	"time"

	"gorm.io/gorm"
)

type Expense struct {
	gorm.Model
	PropertyID  uint      `json:"propertyID" gorm:"index;not null"`
	UnitID      *uint     `json:"unitID" gorm:"index"`
	Category    string    `json:"category"` // maintenance, utilities, cleaning, government_fees, other
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expenseDate" gorm:"index"`
	Vendor      string    `json:"vendor"`
	ReceiptURL  string    `json:"receiptURL"`
	RecordedBy  uint      `json:"recordedBy"`
}
