package services

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Uaq907/estateflow-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createOccupiedUnit(t *testing.T, db *gorm.DB, leaseID uint) models.Unit {
	unit := models.Unit{PropertyID: 1, UnitNumber: "101", Status: models.UnitStatusOccupied}
	require.NoError(t, db.Create(&unit).Error)
	require.NoError(t, db.Model(&unit).Update("active_lease_id", leaseID).Error)
	return unit
}

func TestRenewCarriesArrearsForward(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRenewalService(db)

	oldLease := createLease(t, db, floatPtr(12000), nil, intPtr(3))
	unit := createOccupiedUnit(t, db, oldLease.ID)
	require.NoError(t, db.Model(&oldLease).Update("unit_id", unit.ID).Error)

	cheque := "CHQ-42"
	installments := []models.LeasePayment{
		{LeaseID: oldLease.ID, DueDate: date(2024, time.January, 1), Amount: 4000, Description: "Rent Installment 1", Status: models.PaymentStatusPaid, PaymentMethod: "Cheque"},
		{LeaseID: oldLease.ID, DueDate: date(2024, time.May, 1), Amount: 4000, Description: "Rent Installment 2", Status: models.PaymentStatusPartiallyPaid, PaymentMethod: "Cheque", ChequeNumber: &cheque},
		{LeaseID: oldLease.ID, DueDate: date(2024, time.September, 1), Amount: 4000, Description: "Rent Installment 3", Status: models.PaymentStatusOverdue, PaymentMethod: "Cash"},
	}
	for i := range installments {
		require.NoError(t, db.Create(&installments[i]).Error)
	}

	result, err := svc.Renew(RenewLeaseInput{
		OldLeaseID:       oldLease.ID,
		NewStartDate:     date(2025, time.January, 1),
		NewEndDate:       date(2025, time.December, 31),
		NewRentAmount:    1100,
		NumberOfPayments: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.CarriedForward)
	assert.Equal(t, 4, result.NewInstallments)
	assert.Equal(t, models.LeaseStatusCompletedWithDues, result.OldLeaseStatus)
	assert.Empty(t, result.Warning)

	var newLease models.Lease
	require.NoError(t, db.Preload("Payments").First(&newLease, result.NewLeaseID).Error)
	assert.Equal(t, models.LeaseStatusActive, newLease.Status)
	require.NotNil(t, newLease.TotalLeaseAmount)
	assert.InDelta(t, 4400, *newLease.TotalLeaseAmount, 0.001)
	require.NotNil(t, newLease.TaxedAmount)
	assert.InDelta(t, 4400*models.VATRate, *newLease.TaxedAmount, 0.001)

	// continuous occupancy survives the renewal
	require.NotNil(t, newLease.TenantSince)
	assert.Equal(t, oldLease.StartDate, newLease.TenantSince.UTC())

	require.Len(t, newLease.Payments, 6)
	var arrears, fresh []models.LeasePayment
	for _, p := range newLease.Payments {
		if strings.HasPrefix(p.Description, "Arrears from 2024") {
			arrears = append(arrears, p)
		} else {
			fresh = append(fresh, p)
		}
	}
	require.Len(t, arrears, 2)
	require.Len(t, fresh, 4)

	for _, p := range arrears {
		assert.InDelta(t, 4000, p.Amount, 0.001)
		assert.NotEqual(t, models.PaymentStatusPaid, p.Status)
	}
	carriedStatuses := []string{arrears[0].Status, arrears[1].Status}
	assert.Contains(t, carriedStatuses, models.PaymentStatusPartiallyPaid)
	assert.Contains(t, carriedStatuses, models.PaymentStatusOverdue)

	sort.Slice(fresh, func(i, j int) bool { return fresh[i].DueDate.Before(fresh[j].DueDate) })
	for i, p := range fresh {
		assert.InDelta(t, 1100, p.Amount, 0.001)
		assert.Equal(t, models.PaymentStatusPending, p.Status)
		assert.Contains(t, p.Description, "of 4")
		assert.Equal(t, date(2025, time.January+time.Month(i), 1), p.DueDate.UTC())
	}

	var closedLease models.Lease
	require.NoError(t, db.First(&closedLease, oldLease.ID).Error)
	assert.Equal(t, models.LeaseStatusCompletedWithDues, closedLease.Status)

	var updatedUnit models.Unit
	require.NoError(t, db.First(&updatedUnit, unit.ID).Error)
	require.NotNil(t, updatedUnit.ActiveLeaseID)
	assert.Equal(t, result.NewLeaseID, *updatedUnit.ActiveLeaseID)
	assert.Equal(t, models.UnitStatusOccupied, updatedUnit.Status)
}

func TestRenewWithoutDuesCompletesCleanly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRenewalService(db)

	oldLease := createLease(t, db, floatPtr(12000), nil, intPtr(1))
	createOccupiedUnit(t, db, oldLease.ID)

	paid := models.LeasePayment{LeaseID: oldLease.ID, DueDate: date(2024, time.January, 1), Amount: 12000, Description: "Rent Installment 1", Status: models.PaymentStatusPaid}
	require.NoError(t, db.Create(&paid).Error)

	result, err := svc.Renew(RenewLeaseInput{
		OldLeaseID:       oldLease.ID,
		NewStartDate:     date(2025, time.January, 1),
		NewEndDate:       date(2025, time.December, 31),
		NewRentAmount:    1000,
		NumberOfPayments: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.CarriedForward)
	assert.Equal(t, models.LeaseStatusCompleted, result.OldLeaseStatus)
}

func TestRenewAcceptsCustomPaymentsWithWarning(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRenewalService(db)

	oldLease := createLease(t, db, floatPtr(12000), nil, intPtr(1))
	createOccupiedUnit(t, db, oldLease.ID)

	result, err := svc.Renew(RenewLeaseInput{
		OldLeaseID:       oldLease.ID,
		NewStartDate:     date(2025, time.January, 1),
		NewEndDate:       date(2025, time.December, 31),
		NewRentAmount:    1000,
		NumberOfPayments: 2,
		CustomPayments: []CustomPaymentInput{
			{DueDate: date(2025, time.January, 1), Amount: 900, Description: "Negotiated first half"},
			{DueDate: date(2025, time.July, 1), Amount: 900, Description: "Negotiated second half"},
		},
	})
	require.NoError(t, err)

	// divergence from 2000 is allowed but surfaced
	assert.Contains(t, result.Warning, "1800.00")
	assert.Contains(t, result.Warning, "2000.00")

	var payments []models.LeasePayment
	require.NoError(t, db.Where("lease_id = ?", result.NewLeaseID).Order("due_date").Find(&payments).Error)
	require.Len(t, payments, 2)
	assert.Equal(t, "Negotiated first half", payments[0].Description)
	assert.Equal(t, models.PaymentStatusPending, payments[0].Status)
}

func TestRenewDerivesRentFromIncreasePercentage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRenewalService(db)

	oldLease := createLease(t, db, floatPtr(12000), nil, intPtr(4))
	increase := 10.0
	rent := 1000.0
	require.NoError(t, db.Model(&oldLease).Updates(map[string]interface{}{
		"rent_payment_amount":         rent,
		"renewal_increase_percentage": increase,
	}).Error)
	createOccupiedUnit(t, db, oldLease.ID)

	result, err := svc.Renew(RenewLeaseInput{
		OldLeaseID:       oldLease.ID,
		NewStartDate:     date(2025, time.January, 1),
		NewEndDate:       date(2025, time.December, 31),
		NumberOfPayments: 4,
	})
	require.NoError(t, err)

	var newLease models.Lease
	require.NoError(t, db.First(&newLease, result.NewLeaseID).Error)
	require.NotNil(t, newLease.RentPaymentAmount)
	assert.InDelta(t, 1100, *newLease.RentPaymentAmount, 0.001)
	require.NotNil(t, newLease.TotalLeaseAmount)
	assert.InDelta(t, 4400, *newLease.TotalLeaseAmount, 0.001)
}

func TestRenewUnknownLease(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRenewalService(db)

	_, err := svc.Renew(RenewLeaseInput{
		OldLeaseID:       9999,
		NewStartDate:     date(2025, time.January, 1),
		NewEndDate:       date(2025, time.December, 31),
		NewRentAmount:    1000,
		NumberOfPayments: 4,
	})
	assert.ErrorIs(t, err, ErrOldLeaseNotFound)
}
