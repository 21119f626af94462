package models

import (
	"time"

	"gorm.io/gorm"
)

type LegalCase struct {
	gorm.Model
	LeaseID       uint       `json:"leaseID" gorm:"index;not null"`
	CaseType      string     `json:"caseType"` // eviction, collection, dispute
	CaseNumber    string     `json:"caseNumber"`
	Court         string     `json:"court"`
	Status        string     `json:"status" gorm:"type:varchar(20);default:Open;index"` // Open, In Progress, Closed
	FiledDate     *time.Time `json:"filedDate"`
	HearingDate   *time.Time `json:"hearingDate"`
	ClosedDate    *time.Time `json:"closedDate"`
	ClaimedAmount *float64   `json:"claimedAmount"`
	Summary       string     `json:"summary"`
	Outcome       string     `json:"outcome"`
	DocumentURL   string     `json:"documentURL"`
	Lease         Lease      `json:"lease" gorm:"foreignKey:LeaseID;references:ID"`
}

// Legal case status constants
const (
	LegalCaseStatusOpen       = "Open"
	LegalCaseStatusInProgress = "In Progress"
	LegalCaseStatusClosed     = "Closed"
)
