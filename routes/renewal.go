package routes

import (
	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/services"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

type RenewLeaseCustomPayment struct {
	DueDate     string  `json:"dueDate" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=512"`
}

type RenewLeaseRouteInput struct {
	NewStartDate       string                    `json:"newStartDate" validate:"required"`
	NewEndDate         string                    `json:"newEndDate" validate:"required"`
	NewRentAmount      float64                   `json:"newRentAmount" validate:"gte=0"`
	NumberOfPayments   int                       `json:"numberOfPayments" validate:"required,gt=0"`
	IncreasePercentage *float64                  `json:"increasePercentage"`
	CustomPayments     []RenewLeaseCustomPayment `json:"customPayments" validate:"omitempty,dive"`
}

// RenewLease closes the referenced lease into a new period, carrying unpaid
// installments forward as arrears.
func RenewLease(ctx iris.Context) {
	oldLeaseID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input RenewLeaseRouteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	newStartDate, ok := parseDate(input.NewStartDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "newStartDate must be a YYYY-MM-DD date", ctx)
		return
	}
	newEndDate, ok := parseDate(input.NewEndDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "newEndDate must be a YYYY-MM-DD date", ctx)
		return
	}

	customPayments := make([]services.CustomPaymentInput, 0, len(input.CustomPayments))
	for _, cp := range input.CustomPayments {
		dueDate, ok := parseDate(cp.DueDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "customPayments dueDate must be a YYYY-MM-DD date", ctx)
			return
		}
		customPayments = append(customPayments, services.CustomPaymentInput{
			DueDate:     dueDate,
			Amount:      cp.Amount,
			Description: cp.Description,
		})
	}

	result, renewErr := renewalSvc().Renew(services.RenewLeaseInput{
		OldLeaseID:         oldLeaseID,
		NewStartDate:       newStartDate,
		NewEndDate:         newEndDate,
		NewRentAmount:      input.NewRentAmount,
		NumberOfPayments:   input.NumberOfPayments,
		IncreasePercentage: input.IncreasePercentage,
		CustomPayments:     customPayments,
	})
	if renewErr != nil {
		respondServiceError(ctx, renewErr)
		return
	}

	var oldLease models.Lease
	storage.DB.Select("unit_id").First(&oldLease, oldLeaseID)

	utils.Audit(ctx, "lease.renew", "Lease", oldLeaseID, result)
	notificationService.NotifyLeaseRenewed(oldLeaseID, result.NewLeaseID, oldLease.UnitID, result.CarriedForward)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(result)
}
