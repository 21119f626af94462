package models

import (
	"time"

	"gorm.io/gorm"
)

type Asset struct {
	gorm.Model
	UnitID         uint       `json:"unitID" gorm:"index;not null"`
	Name           string     `json:"name"`
	Category       string     `json:"category"` // appliance, furniture, fixture, hvac
	SerialNumber   string     `json:"serialNumber"`
	PurchaseDate   *time.Time `json:"purchaseDate"`
	PurchasePrice  *float64   `json:"purchasePrice"`
	Condition      string     `json:"condition" gorm:"type:varchar(20);default:Good"` // New, Good, Fair, Damaged
	WarrantyExpiry *time.Time `json:"warrantyExpiry"`
	ImageURL       string     `json:"imageURL"`
}
