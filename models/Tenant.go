package models

import (
	"gorm.io/gorm"
)

type Tenant struct {
	gorm.Model
	Name             string  `json:"name"`
	Email            string  `json:"email" gorm:"index"`
	PhoneNumber      string  `json:"phoneNumber"`
	Nationality      string  `json:"nationality"`
	EmiratesIDNumber string  `json:"emiratesIDNumber"`
	PassportNumber   string  `json:"passportNumber"`
	IDDocumentURL    string  `json:"idDocumentURL"`
	IsCompany        bool    `json:"isCompany"`
	Notes            string  `json:"notes"`
	Leases           []Lease `json:"leases"`
}
