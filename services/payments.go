package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Uaq907/estateflow-sub000/models"

	"gorm.io/gorm"
)

var (
	ErrPlanAlreadyExists    = errors.New("a payment plan already exists for this lease")
	ErrLeaseNotFound        = errors.New("lease not found")
	ErrPaymentNotFound      = errors.New("lease payment not found")
	ErrTransactionNotFound  = errors.New("payment transaction not found")
	ErrNoExtensionRequested = errors.New("no pending extension request on this payment")
	ErrExtensionAlreadyMade = errors.New("an extension request is already pending on this payment")
)

// MissingScheduleInputsError names exactly which lease fields block schedule
// generation, so the caller can surface the specific gap.
type MissingScheduleInputsError struct {
	Missing []string
}

func (e *MissingScheduleInputsError) Error() string {
	return "cannot generate payment plan, missing: " + strings.Join(e.Missing, ", ")
}

// AmountExceedsBalanceError carries the exact numbers involved; its message
// always states the remaining balance.
type AmountExceedsBalanceError struct {
	Attempted float64
	Balance   float64
}

func (e *AmountExceedsBalanceError) Error() string {
	return fmt.Sprintf("payment of %.2f AED exceeds the remaining balance of %.2f AED", e.Attempted, e.Balance)
}

// PaymentStatusResult is the derived view of one installment.
type PaymentStatusResult struct {
	Status     string  `json:"status"`
	PaidAmount float64 `json:"paidAmount"`
	Balance    float64 `json:"balance"`
	Progress   float64 `json:"progress"`
}

// ComputeStatus derives an installment's status from its recorded
// transactions. Pure: identical inputs always produce identical output. The
// stored status column is only a cache of this computation.
func ComputeStatus(p *models.LeasePayment, now time.Time) PaymentStatusResult {
	paid := p.PaidAmount()
	balance := p.Amount - paid

	var progress float64
	if p.Amount != 0 {
		progress = paid / p.Amount * 100
	}

	var status string
	switch {
	case paid >= p.Amount:
		status = models.PaymentStatusPaid
	case paid > 0:
		status = models.PaymentStatusPartiallyPaid
	case p.DueDate.Before(now):
		status = models.PaymentStatusOverdue
	default:
		status = models.PaymentStatusPending
	}

	return PaymentStatusResult{
		Status:     status,
		PaidAmount: paid,
		Balance:    balance,
		Progress:   progress,
	}
}

// PaymentService owns the installment ledger: schedule generation, payment
// transactions and the extension workflow. The DB handle is injected; every
// multi-row write runs inside a transaction.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// RefreshStatus recomputes an installment's status and writes it back when
// it changed. This is the cache-invalidation step that closes every ledger
// and extension mutation.
func (s *PaymentService) RefreshStatus(tx *gorm.DB, paymentID uint, now time.Time) (PaymentStatusResult, error) {
	if tx == nil {
		tx = s.db
	}

	var payment models.LeasePayment
	if err := tx.Preload("Transactions").First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentStatusResult{}, ErrPaymentNotFound
		}
		return PaymentStatusResult{}, err
	}

	result := ComputeStatus(&payment, now)
	if result.Status != payment.Status {
		if err := tx.Model(&payment).Update("status", result.Status).Error; err != nil {
			return PaymentStatusResult{}, err
		}
	}
	return result, nil
}

// GenerateSchedule builds the full installment plan for a lease: one VAT
// installment when a VAT base is set, then numberOfPayments equal rent
// installments spread across a 12-month term. The whole plan is written in a
// single transaction, so a failure leaves no partial schedule.
func (s *PaymentService) GenerateSchedule(leaseID uint) ([]models.LeasePayment, error) {
	var lease models.Lease
	if err := s.db.First(&lease, leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaseNotFound
		}
		return nil, err
	}

	var missing []string
	if lease.TotalLeaseAmount == nil || *lease.TotalLeaseAmount <= 0 {
		missing = append(missing, "totalLeaseAmount")
	}
	if lease.NumberOfPayments == nil || *lease.NumberOfPayments <= 0 {
		missing = append(missing, "numberOfPayments")
	}
	if len(missing) > 0 {
		return nil, &MissingScheduleInputsError{Missing: missing}
	}

	var created []models.LeasePayment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.LeasePayment{}).Where("lease_id = ?", leaseID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrPlanAlreadyExists
		}

		if lease.TaxedAmount != nil && *lease.TaxedAmount > 0 {
			vat := models.LeasePayment{
				LeaseID:       lease.ID,
				DueDate:       lease.StartDate,
				Amount:        *lease.TaxedAmount * models.VATRate,
				Description:   "VAT Payment",
				Status:        models.PaymentStatusPending,
				PaymentMethod: "Cheque",
			}
			if err := tx.Create(&vat).Error; err != nil {
				return err
			}
			created = append(created, vat)
		}

		count := *lease.NumberOfPayments
		paymentAmount := *lease.TotalLeaseAmount / float64(count)
		monthsBetween := 12.0 / float64(count)

		for i := 0; i < count; i++ {
			monthsAhead := int(math.Round(float64(i) * monthsBetween))
			installment := models.LeasePayment{
				LeaseID:       lease.ID,
				DueDate:       lease.StartDate.AddDate(0, monthsAhead, 0),
				Amount:        paymentAmount,
				Description:   fmt.Sprintf("Rent Installment %d", i+1),
				Status:        models.PaymentStatusPending,
				PaymentMethod: "Cheque",
			}
			if err := tx.Create(&installment).Error; err != nil {
				return err
			}
			created = append(created, installment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// TransactionInput carries the fields of one recorded payment event.
type TransactionInput struct {
	AmountPaid    float64
	PaymentDate   time.Time
	PaymentMethod string
	Notes         string
	DocumentURL   string
}

// TransactionPatch is a typed partial update; nil fields are left untouched.
type TransactionPatch struct {
	AmountPaid    *float64
	PaymentDate   *time.Time
	PaymentMethod *string
	Notes         *string
	DocumentURL   *string
}

// AddTransaction records a payment event against an installment. The new
// amount may not exceed the installment's remaining balance; the returned
// error carries that balance. On success the installment status is
// recomputed and persisted.
func (s *PaymentService) AddTransaction(paymentID uint, input TransactionInput) (*models.PaymentTransaction, PaymentStatusResult, error) {
	var payment models.LeasePayment
	if err := s.db.Preload("Transactions").First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, PaymentStatusResult{}, ErrPaymentNotFound
		}
		return nil, PaymentStatusResult{}, err
	}

	balance := payment.Amount - payment.PaidAmount()
	if input.AmountPaid > balance {
		return nil, PaymentStatusResult{}, &AmountExceedsBalanceError{Attempted: input.AmountPaid, Balance: balance}
	}

	transaction := models.PaymentTransaction{
		LeasePaymentID: payment.ID,
		AmountPaid:     input.AmountPaid,
		PaymentDate:    input.PaymentDate,
		PaymentMethod:  input.PaymentMethod,
		Notes:          input.Notes,
		DocumentURL:    input.DocumentURL,
	}

	var result PaymentStatusResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		var refreshErr error
		result, refreshErr = s.RefreshStatus(tx, payment.ID, time.Now())
		return refreshErr
	})
	if err != nil {
		return nil, PaymentStatusResult{}, err
	}

	return &transaction, result, nil
}

// UpdateTransaction applies a typed patch to a recorded payment event. The
// amended amount is not re-validated against the installment balance, so an
// edit can push the recorded total past the installment amount; the status
// cache is refreshed afterwards either way.
func (s *PaymentService) UpdateTransaction(transactionID uint, patch TransactionPatch) (*models.PaymentTransaction, PaymentStatusResult, error) {
	var transaction models.PaymentTransaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, PaymentStatusResult{}, ErrTransactionNotFound
		}
		return nil, PaymentStatusResult{}, err
	}

	if patch.AmountPaid != nil {
		transaction.AmountPaid = *patch.AmountPaid
	}
	if patch.PaymentDate != nil {
		transaction.PaymentDate = *patch.PaymentDate
	}
	if patch.PaymentMethod != nil {
		transaction.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Notes != nil {
		transaction.Notes = *patch.Notes
	}
	if patch.DocumentURL != nil {
		transaction.DocumentURL = *patch.DocumentURL
	}

	var result PaymentStatusResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}
		var refreshErr error
		result, refreshErr = s.RefreshStatus(tx, transaction.LeasePaymentID, time.Now())
		return refreshErr
	})
	if err != nil {
		return nil, PaymentStatusResult{}, err
	}

	return &transaction, result, nil
}

// DeleteTransaction removes a payment event and refreshes the owning
// installment's status. The owning installment is resolved via lookup since
// callers usually hold only the transaction id.
func (s *PaymentService) DeleteTransaction(transactionID uint) (PaymentStatusResult, error) {
	var transaction models.PaymentTransaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentStatusResult{}, ErrTransactionNotFound
		}
		return PaymentStatusResult{}, err
	}

	var result PaymentStatusResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&transaction).Error; err != nil {
			return err
		}
		var refreshErr error
		result, refreshErr = s.RefreshStatus(tx, transaction.LeasePaymentID, time.Now())
		return refreshErr
	})
	if err != nil {
		return PaymentStatusResult{}, err
	}

	return result, nil
}

// RequestExtension records a tenant's request to push an installment's due
// date. Tenant-facing: intentionally not gated by employee permissions.
func (s *PaymentService) RequestExtension(paymentID uint, requestedDueDate time.Time, reason string) (*models.LeasePayment, error) {
	var payment models.LeasePayment
	if err := s.db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.ExtensionStatus != nil && *payment.ExtensionStatus == models.ExtensionStatusPending {
		return nil, ErrExtensionAlreadyMade
	}

	pending := models.ExtensionStatusPending
	payment.ExtensionStatus = &pending
	payment.RequestedDueDate = &requestedDueDate
	payment.ExtensionReason = &reason
	payment.ManagerNotes = nil

	if err := s.db.Save(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ReviewExtension records the manager's decision on a pending extension
// request. Approval is an administrative record only: the due date is never
// moved here, and the request fields are kept for audit history.
func (s *PaymentService) ReviewExtension(paymentID uint, approved bool, managerNotes string) (*models.LeasePayment, error) {
	var payment models.LeasePayment
	if err := s.db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.ExtensionStatus == nil || *payment.ExtensionStatus != models.ExtensionStatusPending {
		return nil, ErrNoExtensionRequested
	}

	decision := models.ExtensionStatusRejected
	if approved {
		decision = models.ExtensionStatusApproved
	}
	payment.ExtensionStatus = &decision
	if managerNotes != "" {
		payment.ManagerNotes = &managerNotes
	}

	if err := s.db.Save(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
