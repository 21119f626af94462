package services

import (
	"testing"
	"time"

	"github.com/Uaq907/estateflow-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Unit{},
		&models.Tenant{},
		&models.Lease{},
		&models.LeasePayment{},
		&models.PaymentTransaction{},
	))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func createLease(t *testing.T, db *gorm.DB, total *float64, taxed *float64, n *int) models.Lease {
	lease := models.Lease{
		UnitID:           1,
		TenantID:         1,
		Status:           models.LeaseStatusActive,
		StartDate:        date(2024, time.January, 1),
		EndDate:          date(2024, time.December, 31),
		TotalLeaseAmount: total,
		TaxedAmount:      taxed,
		NumberOfPayments: n,
	}
	require.NoError(t, db.Create(&lease).Error)
	return lease
}

func TestComputeStatusIsDeterministic(t *testing.T) {
	now := date(2024, time.June, 1)
	payment := models.LeasePayment{
		Amount:  3000,
		DueDate: date(2024, time.March, 1),
		Transactions: []models.PaymentTransaction{
			{AmountPaid: 1000},
			{AmountPaid: 500},
		},
	}

	first := ComputeStatus(&payment, now)
	second := ComputeStatus(&payment, now)

	assert.Equal(t, first, second)
	assert.Equal(t, models.PaymentStatusPartiallyPaid, first.Status)
	assert.Equal(t, 1500.0, first.PaidAmount)
	assert.Equal(t, 1500.0, first.Balance)
	assert.Equal(t, 50.0, first.Progress)
}

func TestComputeStatusBranches(t *testing.T) {
	now := date(2024, time.June, 1)

	paid := models.LeasePayment{
		Amount:       3000,
		DueDate:      date(2024, time.March, 1),
		Transactions: []models.PaymentTransaction{{AmountPaid: 3000}},
	}
	assert.Equal(t, models.PaymentStatusPaid, ComputeStatus(&paid, now).Status)

	overdue := models.LeasePayment{Amount: 3000, DueDate: date(2024, time.March, 1)}
	assert.Equal(t, models.PaymentStatusOverdue, ComputeStatus(&overdue, now).Status)

	pending := models.LeasePayment{Amount: 3000, DueDate: date(2024, time.September, 1)}
	assert.Equal(t, models.PaymentStatusPending, ComputeStatus(&pending, now).Status)

	// amount zero must not divide by zero
	zero := models.LeasePayment{Amount: 0, DueDate: date(2024, time.September, 1)}
	result := ComputeStatus(&zero, now)
	assert.Equal(t, 0.0, result.Progress)
}

func TestGenerateScheduleSpreadsPayments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	lease := createLease(t, db, floatPtr(12000), nil, intPtr(4))

	payments, err := svc.GenerateSchedule(lease.ID)
	require.NoError(t, err)
	require.Len(t, payments, 4)

	var sum float64
	for _, p := range payments {
		sum += p.Amount
		assert.Equal(t, models.PaymentStatusPending, p.Status)
		assert.Equal(t, "Cheque", p.PaymentMethod)
	}
	assert.InDelta(t, 12000, sum, 0.001)

	assert.Equal(t, date(2024, time.January, 1), payments[0].DueDate)
	assert.Equal(t, date(2024, time.April, 1), payments[1].DueDate)
	assert.Equal(t, date(2024, time.July, 1), payments[2].DueDate)
	assert.Equal(t, date(2024, time.October, 1), payments[3].DueDate)

	assert.Equal(t, "Rent Installment 1", payments[0].Description)
	assert.Equal(t, "Rent Installment 4", payments[3].Description)
}

func TestGenerateScheduleAddsVATInstallment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	lease := createLease(t, db, floatPtr(12000), floatPtr(10000), intPtr(4))

	payments, err := svc.GenerateSchedule(lease.ID)
	require.NoError(t, err)
	require.Len(t, payments, 5)

	vat := payments[0]
	assert.Equal(t, "VAT Payment", vat.Description)
	assert.InDelta(t, 500, vat.Amount, 0.001)
	assert.Equal(t, lease.StartDate, vat.DueDate)
}

func TestGenerateScheduleRejectsSecondRun(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	lease := createLease(t, db, floatPtr(12000), nil, intPtr(4))

	_, err := svc.GenerateSchedule(lease.ID)
	require.NoError(t, err)

	_, err = svc.GenerateSchedule(lease.ID)
	assert.ErrorIs(t, err, ErrPlanAlreadyExists)

	var count int64
	db.Model(&models.LeasePayment{}).Where("lease_id = ?", lease.ID).Count(&count)
	assert.EqualValues(t, 4, count)
}

func TestGenerateScheduleNamesMissingInputs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	lease := createLease(t, db, nil, nil, nil)

	_, err := svc.GenerateSchedule(lease.ID)

	var missingErr *MissingScheduleInputsError
	require.ErrorAs(t, err, &missingErr)
	assert.Contains(t, missingErr.Missing, "totalLeaseAmount")
	assert.Contains(t, missingErr.Missing, "numberOfPayments")
	assert.Contains(t, err.Error(), "totalLeaseAmount")
}

func TestAddTransactionFlipsStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	lease := createLease(t, db, floatPtr(12000), nil, intPtr(4))

	payments, err := svc.GenerateSchedule(lease.ID)
	require.NoError(t, err)
	first := payments[0]

	_, status, err := svc.AddTransaction(first.ID, TransactionInput{
		AmountPaid:  1500,
		PaymentDate: date(2024, time.January, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPartiallyPaid, status.Status)
	assert.Equal(t, 1500.0, status.Balance)

	_, status, err = svc.AddTransaction(first.ID, TransactionInput{
		AmountPaid:  1500,
		PaymentDate: date(2024, time.January, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, status.Status)
	assert.Equal(t, 0.0, status.Balance)

	var stored models.LeasePayment
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, stored.Status)
}

func TestAddTransactionRejectsOverpayment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	lease := createLease(t, db, floatPtr(12000), nil, intPtr(4))

	payments, err := svc.GenerateSchedule(lease.ID)
	require.NoError(t, err)
	first := payments[0]

	_, _, err = svc.AddTransaction(first.ID, TransactionInput{
		AmountPaid:  1500,
		PaymentDate: date(2024, time.January, 2),
	})
	require.NoError(t, err)

	_, _, err = svc.AddTransaction(first.ID, TransactionInput{
		AmountPaid:  2000,
		PaymentDate: date(2024, time.January, 3),
	})

	var exceedsErr *AmountExceedsBalanceError
	require.ErrorAs(t, err, &exceedsErr)
	assert.Equal(t, 1500.0, exceedsErr.Balance)
	assert.Contains(t, err.Error(), "1500.00")

	// nothing persisted
	var count int64
	db.Model(&models.PaymentTransaction{}).Where("lease_payment_id = ?", first.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdateAndDeleteTransactionRecompute(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	lease := createLease(t, db, floatPtr(6000), nil, intPtr(2))

	payments, err := svc.GenerateSchedule(lease.ID)
	require.NoError(t, err)
	first := payments[0]

	transaction, _, err := svc.AddTransaction(first.ID, TransactionInput{
		AmountPaid:  3000,
		PaymentDate: date(2024, time.January, 2),
	})
	require.NoError(t, err)

	// shrink the amount; status falls back to Partially Paid
	_, status, err := svc.UpdateTransaction(transaction.ID, TransactionPatch{AmountPaid: floatPtr(1000)})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPartiallyPaid, status.Status)
	assert.Equal(t, 2000.0, status.Balance)

	status, err = svc.DeleteTransaction(transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, status.PaidAmount)
	assert.NotEqual(t, models.PaymentStatusPaid, status.Status)

	_, _, err = svc.UpdateTransaction(transaction.ID, TransactionPatch{})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestExtensionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	lease := createLease(t, db, floatPtr(12000), nil, intPtr(4))

	payments, err := svc.GenerateSchedule(lease.ID)
	require.NoError(t, err)
	first := payments[0]

	requestedDate := date(2024, time.February, 15)
	payment, err := svc.RequestExtension(first.ID, requestedDate, "salary delayed")
	require.NoError(t, err)
	require.NotNil(t, payment.ExtensionStatus)
	assert.Equal(t, models.ExtensionStatusPending, *payment.ExtensionStatus)

	// a second request while one is pending is rejected
	_, err = svc.RequestExtension(first.ID, requestedDate, "again")
	assert.ErrorIs(t, err, ErrExtensionAlreadyMade)

	reviewed, err := svc.ReviewExtension(first.ID, true, "approved this once")
	require.NoError(t, err)
	require.NotNil(t, reviewed.ExtensionStatus)
	assert.Equal(t, models.ExtensionStatusApproved, *reviewed.ExtensionStatus)

	// request fields survive the decision, and the due date never moves here
	require.NotNil(t, reviewed.RequestedDueDate)
	assert.Equal(t, requestedDate, reviewed.RequestedDueDate.UTC())
	require.NotNil(t, reviewed.ExtensionReason)
	assert.Equal(t, "salary delayed", *reviewed.ExtensionReason)
	assert.Equal(t, first.DueDate, reviewed.DueDate.UTC())

	_, err = svc.ReviewExtension(first.ID, false, "")
	assert.ErrorIs(t, err, ErrNoExtensionRequested)
}
