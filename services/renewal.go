package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Uaq907/estateflow-sub000/models"

	"gorm.io/gorm"
)

var ErrOldLeaseNotFound = errors.New("the lease being renewed was not found")

// CustomPaymentInput is one caller-supplied new-period installment.
type CustomPaymentInput struct {
	DueDate     time.Time `json:"dueDate"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
}

// RenewLeaseInput carries the terms of the next lease period. When
// NewRentAmount is zero the per-installment rent is derived from the old
// lease's rent plus its renewal increase percentage.
type RenewLeaseInput struct {
	OldLeaseID         uint
	NewStartDate       time.Time
	NewEndDate         time.Time
	NewRentAmount      float64
	NumberOfPayments   int
	IncreasePercentage *float64
	CustomPayments     []CustomPaymentInput
}

// RenewalResult reports what the renewal produced. Warning is set when a
// custom payment list does not sum to the computed new-period total; the
// mismatch is allowed (negotiated discounts exist) but surfaced.
type RenewalResult struct {
	NewLeaseID      uint   `json:"newLeaseID"`
	CarriedForward  int    `json:"carriedForward"`
	NewInstallments int    `json:"newInstallments"`
	OldLeaseStatus  string `json:"oldLeaseStatus"`
	Warning         string `json:"warning,omitempty"`
}

// RenewalService closes a lease into its successor: unpaid installments are
// carried forward as arrears, new-period installments are generated, and the
// unit is repointed. The whole migration runs in one transaction.
type RenewalService struct {
	db *gorm.DB
}

func NewRenewalService(db *gorm.DB) *RenewalService {
	return &RenewalService{db: db}
}

func (s *RenewalService) Renew(input RenewLeaseInput) (RenewalResult, error) {
	var oldLease models.Lease
	err := s.db.Preload("Payments.Transactions").First(&oldLease, input.OldLeaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RenewalResult{}, ErrOldLeaseNotFound
		}
		return RenewalResult{}, err
	}

	newRent := input.NewRentAmount
	if newRent <= 0 {
		if oldLease.RentPaymentAmount != nil {
			newRent = *oldLease.RentPaymentAmount
		}
		increase := input.IncreasePercentage
		if increase == nil {
			increase = oldLease.RenewalIncreasePercentage
		}
		if increase != nil {
			newRent = newRent * (1 + *increase/100)
		}
	}

	totalNewAmount := newRent * float64(input.NumberOfPayments)
	taxedAmount := totalNewAmount * models.VATRate

	var unpaid []models.LeasePayment
	for _, p := range oldLease.Payments {
		if p.Status != models.PaymentStatusPaid {
			unpaid = append(unpaid, p)
		}
	}

	result := RenewalResult{CarriedForward: len(unpaid)}

	if len(input.CustomPayments) > 0 {
		var customSum float64
		for _, cp := range input.CustomPayments {
			customSum += cp.Amount
		}
		if math.Abs(customSum-totalNewAmount) > 0.01 {
			result.Warning = fmt.Sprintf(
				"custom payments sum to %.2f AED but the new lease total is %.2f AED", customSum, totalNewAmount)
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		tenantSince := oldLease.OccupancyStart()
		newLease := models.Lease{
			UnitID:                    oldLease.UnitID,
			TenantID:                  oldLease.TenantID,
			Status:                    models.LeaseStatusActive,
			StartDate:                 input.NewStartDate,
			EndDate:                   input.NewEndDate,
			TenantSince:               &tenantSince,
			TotalLeaseAmount:          &totalNewAmount,
			TaxedAmount:               &taxedAmount,
			RentPaymentAmount:         &newRent,
			NumberOfPayments:          &input.NumberOfPayments,
			RenewalIncreasePercentage: input.IncreasePercentage,
			BusinessName:              oldLease.BusinessName,
			BusinessType:              oldLease.BusinessType,
			TradeLicenseNumber:        oldLease.TradeLicenseNumber,
		}
		if err := tx.Create(&newLease).Error; err != nil {
			return err
		}

		// Arrears carry-forward: amount, status, method and cheque fields
		// survive; the description is relabeled so old dues stay
		// distinguishable from new-period rent.
		arrearsYear := oldLease.EndDate.Year()
		for _, p := range unpaid {
			carried := models.LeasePayment{
				LeaseID:        newLease.ID,
				DueDate:        p.DueDate,
				Amount:         p.Amount,
				Description:    fmt.Sprintf("Arrears from %d: %s", arrearsYear, p.Description),
				Status:         p.Status,
				PaymentMethod:  p.PaymentMethod,
				ChequeNumber:   p.ChequeNumber,
				ChequeImageURL: p.ChequeImageURL,
			}
			if err := tx.Create(&carried).Error; err != nil {
				return err
			}
		}

		if len(input.CustomPayments) > 0 {
			for _, cp := range input.CustomPayments {
				installment := models.LeasePayment{
					LeaseID:       newLease.ID,
					DueDate:       cp.DueDate,
					Amount:        cp.Amount,
					Description:   cp.Description,
					Status:        models.PaymentStatusPending,
					PaymentMethod: "Cheque",
				}
				if err := tx.Create(&installment).Error; err != nil {
					return err
				}
			}
			result.NewInstallments = len(input.CustomPayments)
		} else {
			for i := 0; i < input.NumberOfPayments; i++ {
				installment := models.LeasePayment{
					LeaseID:       newLease.ID,
					DueDate:       input.NewStartDate.AddDate(0, i, 0),
					Amount:        newRent,
					Description:   fmt.Sprintf("Payment %d of %d", i+1, input.NumberOfPayments),
					Status:        models.PaymentStatusPending,
					PaymentMethod: "Cheque",
				}
				if err := tx.Create(&installment).Error; err != nil {
					return err
				}
			}
			result.NewInstallments = input.NumberOfPayments
		}

		closedStatus := models.LeaseStatusCompleted
		if len(unpaid) > 0 {
			closedStatus = models.LeaseStatusCompletedWithDues
		}
		if err := tx.Model(&oldLease).Update("status", closedStatus).Error; err != nil {
			return err
		}
		result.OldLeaseStatus = closedStatus

		// Repoint the unit so the one-active-lease-per-unit invariant holds.
		err := tx.Model(&models.Unit{}).Where("id = ?", oldLease.UnitID).Updates(map[string]interface{}{
			"active_lease_id": newLease.ID,
			"status":          models.UnitStatusOccupied,
		}).Error
		if err != nil {
			return err
		}

		result.NewLeaseID = newLease.ID
		return nil
	})
	if err != nil {
		return RenewalResult{}, err
	}

	return result, nil
}
