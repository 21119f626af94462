package models

import (
	"gorm.io/gorm"
)

type Unit struct {
	gorm.Model
	PropertyID    uint    `json:"propertyID" gorm:"index;not null"`
	UnitNumber    string  `json:"unitNumber"`
	Floor         string  `json:"floor"`
	UnitType      string  `json:"unitType"` // apartment, villa, office, shop, warehouse
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	SizeSqm       float64 `json:"sizeSqm"`
	Status        string  `json:"status" gorm:"type:varchar(20);default:Vacant;index"` // Vacant, Occupied, Under Maintenance
	ActiveLeaseID *uint   `json:"activeLeaseID"`
	Notes         string  `json:"notes"`
	Leases        []Lease `json:"leases"`
	Assets        []Asset `json:"assets"`
}

// Unit status constants
const (
	UnitStatusVacant      = "Vacant"
	UnitStatusOccupied    = "Occupied"
	UnitStatusMaintenance = "Under Maintenance"
)
