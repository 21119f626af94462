package models

import (
	"time"

	"gorm.io/gorm"
)

type MaintenanceContract struct {
	gorm.Model
	PropertyID    uint      `json:"propertyID" gorm:"index;not null"`
	VendorName    string    `json:"vendorName"`
	VendorPhone   string    `json:"vendorPhone"`
	Scope         string    `json:"scope"` // elevators, hvac, cleaning, pest_control, security, general
	Description   string    `json:"description"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate" gorm:"index"`
	AnnualCost    float64   `json:"annualCost"`
	ContractURL   string    `json:"contractURL"`
	AutoRenews    bool      `json:"autoRenews"`
	ContactPerson string    `json:"contactPerson"`
}

// IsExpired reports whether the contract has lapsed as of now.
func (m *MaintenanceContract) IsExpired(now time.Time) bool {
	return m.EndDate.Before(now)
}
