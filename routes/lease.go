package routes

import (
	"time"

	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateLeaseInput struct {
	UnitID                    uint     `json:"unitID" validate:"required"`
	TenantID                  uint     `json:"tenantID" validate:"required"`
	StartDate                 string   `json:"startDate" validate:"required"`
	EndDate                   string   `json:"endDate" validate:"required"`
	TotalLeaseAmount          *float64 `json:"totalLeaseAmount" validate:"omitempty,gt=0"`
	TaxedAmount               *float64 `json:"taxedAmount" validate:"omitempty,gte=0"`
	RentPaymentAmount         *float64 `json:"rentPaymentAmount" validate:"omitempty,gt=0"`
	NumberOfPayments          *int     `json:"numberOfPayments" validate:"omitempty,gt=0"`
	RenewalIncreasePercentage *float64 `json:"renewalIncreasePercentage"`
	BusinessName              *string  `json:"businessName"`
	BusinessType              *string  `json:"businessType"`
	TradeLicenseNumber        *string  `json:"tradeLicenseNumber"`
	ContractURL               string   `json:"contractURL"`
	GuaranteeChequeURL        string   `json:"guaranteeChequeURL"`
	TradeLicenseURL           string   `json:"tradeLicenseURL"`
}

type UpdateLeaseInput struct {
	StartDate                 *string  `json:"startDate"`
	EndDate                   *string  `json:"endDate"`
	TotalLeaseAmount          *float64 `json:"totalLeaseAmount" validate:"omitempty,gt=0"`
	TaxedAmount               *float64 `json:"taxedAmount" validate:"omitempty,gte=0"`
	RentPaymentAmount         *float64 `json:"rentPaymentAmount" validate:"omitempty,gt=0"`
	NumberOfPayments          *int     `json:"numberOfPayments" validate:"omitempty,gt=0"`
	RenewalIncreasePercentage *float64 `json:"renewalIncreasePercentage"`
	BusinessName              *string  `json:"businessName"`
	BusinessType              *string  `json:"businessType"`
	TradeLicenseNumber        *string  `json:"tradeLicenseNumber"`
	ContractURL               *string  `json:"contractURL"`
	GuaranteeChequeURL        *string  `json:"guaranteeChequeURL"`
	TradeLicenseURL           *string  `json:"tradeLicenseURL"`
}

type EndLeaseInput struct {
	Cancelled bool `json:"cancelled"`
}

func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func ListLeases(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Lease{})
	if unitID := ctx.URLParamDefault("unit_id", ""); unitID != "" {
		query = query.Where("unit_id = ?", unitID)
	}
	if tenantID := ctx.URLParamDefault("tenant_id", ""); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if status := ctx.URLParamDefault("status", ""); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var leases []models.Lease
	if err := query.Preload("Tenant").Preload("Unit").Offset((page - 1) * perPage).Limit(perPage).Order("id desc").Find(&leases).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, leases, page, perPage, total)
}

func GetLease(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var lease models.Lease
	res := storage.DB.Preload("Tenant").Preload("Unit").Preload("Payments.Transactions").Where("id = ?", id).Find(&lease)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	ctx.JSON(lease)
}

// CreateLease assigns a tenant to a unit. The unit must not already hold an
// active lease; on success the unit flips to Occupied and points at the new
// lease.
func CreateLease(ctx iris.Context) {
	var input CreateLeaseInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, ok := parseDate(input.StartDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "startDate must be a YYYY-MM-DD date", ctx)
		return
	}
	endDate, ok := parseDate(input.EndDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "endDate must be a YYYY-MM-DD date", ctx)
		return
	}

	var unit models.Unit
	unitRes := storage.DB.Where("id = ?", input.UnitID).Find(&unit)
	if unitRes.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if unitRes.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Unit not found", ctx)
		return
	}

	if unit.ActiveLeaseID != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "Unit already has an active lease.", ctx)
		return
	}

	var tenant models.Tenant
	tenantRes := storage.DB.Where("id = ?", input.TenantID).Find(&tenant)
	if tenantRes.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if tenantRes.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Tenant not found", ctx)
		return
	}

	tenantSince := startDate
	lease := models.Lease{
		UnitID:                    input.UnitID,
		TenantID:                  input.TenantID,
		Status:                    models.LeaseStatusActive,
		StartDate:                 startDate,
		EndDate:                   endDate,
		TenantSince:               &tenantSince,
		TotalLeaseAmount:          input.TotalLeaseAmount,
		TaxedAmount:               input.TaxedAmount,
		RentPaymentAmount:         input.RentPaymentAmount,
		NumberOfPayments:          input.NumberOfPayments,
		RenewalIncreasePercentage: input.RenewalIncreasePercentage,
		BusinessName:              input.BusinessName,
		BusinessType:              input.BusinessType,
		TradeLicenseNumber:        input.TradeLicenseNumber,
		ContractURL:               input.ContractURL,
		GuaranteeChequeURL:        input.GuaranteeChequeURL,
		TradeLicenseURL:           input.TradeLicenseURL,
	}

	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lease).Error; err != nil {
			return err
		}
		return tx.Model(&unit).Updates(map[string]interface{}{
			"active_lease_id": lease.ID,
			"status":          models.UnitStatusOccupied,
		}).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "lease.create", "Lease", lease.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(lease)
}

func UpdateLease(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var lease models.Lease
	res := storage.DB.Where("id = ?", id).Find(&lease)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	var input UpdateLeaseInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.StartDate != nil {
		startDate, ok := parseDate(*input.StartDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "startDate must be a YYYY-MM-DD date", ctx)
			return
		}
		lease.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, ok := parseDate(*input.EndDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "endDate must be a YYYY-MM-DD date", ctx)
			return
		}
		lease.EndDate = endDate
	}
	if input.TotalLeaseAmount != nil {
		lease.TotalLeaseAmount = input.TotalLeaseAmount
	}
	if input.TaxedAmount != nil {
		lease.TaxedAmount = input.TaxedAmount
	}
	if input.RentPaymentAmount != nil {
		lease.RentPaymentAmount = input.RentPaymentAmount
	}
	if input.NumberOfPayments != nil {
		lease.NumberOfPayments = input.NumberOfPayments
	}
	if input.RenewalIncreasePercentage != nil {
		lease.RenewalIncreasePercentage = input.RenewalIncreasePercentage
	}
	if input.BusinessName != nil {
		lease.BusinessName = input.BusinessName
	}
	if input.BusinessType != nil {
		lease.BusinessType = input.BusinessType
	}
	if input.TradeLicenseNumber != nil {
		lease.TradeLicenseNumber = input.TradeLicenseNumber
	}
	if input.ContractURL != nil {
		lease.ContractURL = *input.ContractURL
	}
	if input.GuaranteeChequeURL != nil {
		lease.GuaranteeChequeURL = *input.GuaranteeChequeURL
	}
	if input.TradeLicenseURL != nil {
		lease.TradeLicenseURL = *input.TradeLicenseURL
	}

	if err := storage.DB.Save(&lease).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "lease.update", "Lease", lease.ID, input)
	ctx.JSON(lease)
}

// EndLease terminates a lease without renewal. The closing status reflects
// whether unpaid installments remain: "Completed"/"Cancelled" when the
// ledger is clean, the "with Dues" variant otherwise. The unit is vacated.
func EndLease(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var lease models.Lease
	res := storage.DB.Preload("Payments.Transactions").Where("id = ?", id).Find(&lease)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	if !lease.IsActive() {
		utils.CreateError(iris.StatusConflict, "Conflict", "Lease is not active.", ctx)
		return
	}

	var input EndLeaseInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	hasDues := false
	for _, p := range lease.Payments {
		if p.Status != models.PaymentStatusPaid {
			hasDues = true
			break
		}
	}

	status := models.LeaseStatusCompleted
	switch {
	case input.Cancelled && hasDues:
		status = models.LeaseStatusCancelledWithDues
	case input.Cancelled:
		status = models.LeaseStatusCancelled
	case hasDues:
		status = models.LeaseStatusCompletedWithDues
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&lease).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Model(&models.Unit{}).
			Where("id = ? AND active_lease_id = ?", lease.UnitID, lease.ID).
			Updates(map[string]interface{}{
				"active_lease_id": nil,
				"status":          models.UnitStatusVacant,
			}).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "lease.end", "Lease", lease.ID, iris.Map{"status": status})
	ctx.JSON(iris.Map{"success": true, "status": status})
}

// DeleteLease hard-deletes a lease with its installments and transactions.
// Admin-only; the unit is vacated when this lease was its active one.
func DeleteLease(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var lease models.Lease
	res := storage.DB.Where("id = ?", id).Find(&lease)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		var paymentIDs []uint
		if err := tx.Model(&models.LeasePayment{}).Where("lease_id = ?", lease.ID).Pluck("id", &paymentIDs).Error; err != nil {
			return err
		}
		if len(paymentIDs) > 0 {
			if err := tx.Unscoped().Where("lease_payment_id IN ?", paymentIDs).Delete(&models.PaymentTransaction{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("lease_id = ?", lease.ID).Delete(&models.LeasePayment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Unit{}).
			Where("id = ? AND active_lease_id = ?", lease.UnitID, lease.ID).
			Updates(map[string]interface{}{
				"active_lease_id": nil,
				"status":          models.UnitStatusVacant,
			}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&lease).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "lease.delete", "Lease", lease.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}
