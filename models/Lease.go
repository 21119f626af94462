package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VATRate is the UAE value-added tax rate applied to the taxed portion of a
// lease. Schedule generation and renewal both read this constant.
const VATRate = 0.05

type Lease struct {
	gorm.Model
	UnitID                    uint           `json:"unitID" gorm:"index;not null"`
	TenantID                  uint           `json:"tenantID" gorm:"index;not null"`
	Status                    string         `json:"status" gorm:"type:varchar(30);default:Active;index"` // Active, Completed, Cancelled, Completed with Dues, Cancelled with Dues
	StartDate                 time.Time      `json:"startDate"`
	EndDate                   time.Time      `json:"endDate"`
	TenantSince               *time.Time     `json:"tenantSince"` // earliest continuous occupancy, carried across renewals
	TotalLeaseAmount          *float64       `json:"totalLeaseAmount"`
	TaxedAmount               *float64       `json:"taxedAmount"` // VAT base
	RentPaymentAmount         *float64       `json:"rentPaymentAmount"`
	NumberOfPayments          *int           `json:"numberOfPayments"`
	RenewalIncreasePercentage *float64       `json:"renewalIncreasePercentage"`
	BusinessName              *string        `json:"businessName"`
	BusinessType              *string        `json:"businessType"`
	TradeLicenseNumber        *string        `json:"tradeLicenseNumber"`
	ContractURL               string         `json:"contractURL"`
	GuaranteeChequeURL        string         `json:"guaranteeChequeURL"`
	TradeLicenseURL           string         `json:"tradeLicenseURL"`
	Documents                 datatypes.JSON `json:"documents"` // extra document URLs
	Payments                  []LeasePayment `json:"payments" gorm:"constraint:OnDelete:CASCADE"`
	Unit                      Unit           `json:"unit" gorm:"foreignKey:UnitID;references:ID"`
	Tenant                    Tenant         `json:"tenant" gorm:"foreignKey:TenantID;references:ID"`
}

// Lease status constants
const (
	LeaseStatusActive            = "Active"
	LeaseStatusCompleted         = "Completed"
	LeaseStatusCancelled         = "Cancelled"
	LeaseStatusCompletedWithDues = "Completed with Dues"
	LeaseStatusCancelledWithDues = "Cancelled with Dues"
)

// IsActive reports whether this lease currently occupies its unit.
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// MayRenew reports whether the lease can be closed into a renewal.
func (l *Lease) MayRenew() bool {
	return l.Status == LeaseStatusActive
}

// OccupancyStart is the date carried into a renewal's tenantSince: the
// existing tenantSince when set, else this lease's own start.
func (l *Lease) OccupancyStart() time.Time {
	if l.TenantSince != nil {
		return *l.TenantSince
	}
	return l.StartDate
}
