package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	Name         string  `json:"name"`
	PropertyType string  `json:"propertyType"` // residential, commercial, mixed_use
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	Emirate      string  `json:"emirate"`
	Country      string  `json:"country"`
	Lat          float32 `json:"lat"`
	Lng          float32 `json:"lng"`
	OwnerName    string  `json:"ownerName"`
	OwnerPhone   string  `json:"ownerPhone"`
	OwnerEmail   string  `json:"ownerEmail"`
	Description  string  `json:"description"`
	Images       string  `json:"images"` // JSON array of URLs
	IsActive     *bool   `json:"isActive"`
	Units        []Unit  `json:"units"`
}
