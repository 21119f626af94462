package routes

import (
	"errors"
	"fmt"
	"time"

	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/services"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

var notificationService = services.NewNotificationService()

func paymentSvc() *services.PaymentService {
	return services.NewPaymentService(storage.DB)
}

func renewalSvc() *services.RenewalService {
	return services.NewRenewalService(storage.DB)
}

// respondServiceError maps ledger/renewal errors onto HTTP problem
// responses, keeping the business detail (exact amounts, missing fields) in
// the message.
func respondServiceError(ctx iris.Context, err error) {
	var missingInputs *services.MissingScheduleInputsError
	var exceedsBalance *services.AmountExceedsBalanceError

	switch {
	case errors.Is(err, services.ErrLeaseNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrOldLeaseNotFound):
		utils.CreateError(iris.StatusNotFound, "Not Found", err.Error(), ctx)
	case errors.Is(err, services.ErrPlanAlreadyExists),
		errors.Is(err, services.ErrExtensionAlreadyMade),
		errors.Is(err, services.ErrNoExtensionRequested):
		utils.CreateError(iris.StatusConflict, "Conflict", err.Error(), ctx)
	case errors.As(err, &missingInputs), errors.As(err, &exceedsBalance):
		utils.CreateError(iris.StatusBadRequest, "Validation error", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

type CreateLeasePaymentInput struct {
	DueDate       string  `json:"dueDate" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Description   string  `json:"description" validate:"required,max=512"`
	PaymentMethod string  `json:"paymentMethod" validate:"omitempty,oneof=Cheque Cash 'Bank Transfer'"`
	ChequeNumber  *string `json:"chequeNumber"`
}

type UpdateLeasePaymentInput struct {
	DueDate       *string  `json:"dueDate"`
	Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
	Description   *string  `json:"description" validate:"omitempty,max=512"`
	PaymentMethod *string  `json:"paymentMethod" validate:"omitempty,oneof=Cheque Cash 'Bank Transfer'"`
	ChequeNumber  *string  `json:"chequeNumber"`
	Status        *string  `json:"status" validate:"omitempty,oneof=Pending 'Partially Paid' Paid Overdue"` // administrative override
}

type ChequeImageInput struct {
	Image string `json:"image" validate:"required"`
}

type AddTransactionInput struct {
	AmountPaid    float64 `json:"amountPaid" validate:"required,gt=0"`
	PaymentDate   string  `json:"paymentDate" validate:"required"`
	PaymentMethod string  `json:"paymentMethod" validate:"omitempty,oneof=Cheque Cash 'Bank Transfer'"`
	Notes         string  `json:"notes"`
	Document      string  `json:"document"` // optional base64 payload
}

type UpdateTransactionInput struct {
	AmountPaid    *float64 `json:"amountPaid" validate:"omitempty,gt=0"`
	PaymentDate   *string  `json:"paymentDate"`
	PaymentMethod *string  `json:"paymentMethod" validate:"omitempty,oneof=Cheque Cash 'Bank Transfer'"`
	Notes         *string  `json:"notes"`
}

type RequestExtensionInput struct {
	RequestedDueDate string `json:"requestedDueDate" validate:"required"`
	Reason           string `json:"reason" validate:"required,max=1024"`
}

type ReviewExtensionInput struct {
	Approved     bool   `json:"approved"`
	ManagerNotes string `json:"managerNotes" validate:"max=1024"`
}

// GenerateLeaseSchedule builds the installment plan for a lease that has
// none yet.
func GenerateLeaseSchedule(ctx iris.Context) {
	leaseID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	payments, genErr := paymentSvc().GenerateSchedule(leaseID)
	if genErr != nil {
		respondServiceError(ctx, genErr)
		return
	}

	utils.Audit(ctx, "lease.schedule_generate", "Lease", leaseID, iris.Map{"installments": len(payments)})
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "payments": payments})
}

type leasePaymentView struct {
	models.LeasePayment
	PaidAmount float64 `json:"paidAmount"`
	Balance    float64 `json:"balance"`
	Progress   float64 `json:"progress"`
}

// ListLeasePayments returns a lease's installments with the derived paid
// amount, balance and progress attached to each.
func ListLeasePayments(ctx iris.Context) {
	leaseID := ctx.Params().Get("id")

	var lease models.Lease
	res := storage.DB.Where("id = ?", leaseID).Find(&lease)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	var payments []models.LeasePayment
	if err := storage.DB.Preload("Transactions").Where("lease_id = ?", lease.ID).Order("due_date").Find(&payments).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	now := time.Now()
	views := make([]leasePaymentView, 0, len(payments))
	for i := range payments {
		derived := services.ComputeStatus(&payments[i], now)
		payments[i].Status = derived.Status
		views = append(views, leasePaymentView{
			LeasePayment: payments[i],
			PaidAmount:   derived.PaidAmount,
			Balance:      derived.Balance,
			Progress:     derived.Progress,
		})
	}

	ctx.JSON(iris.Map{"leaseID": lease.ID, "payments": views})
}

// CreateLeasePayment adds a single installment outside the generated plan.
func CreateLeasePayment(ctx iris.Context) {
	leaseID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var lease models.Lease
	res := storage.DB.Where("id = ?", leaseID).Find(&lease)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	var input CreateLeasePaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	dueDate, ok := parseDate(input.DueDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "dueDate must be a YYYY-MM-DD date", ctx)
		return
	}

	method := input.PaymentMethod
	if method == "" {
		method = "Cheque"
	}

	payment := models.LeasePayment{
		LeaseID:       lease.ID,
		DueDate:       dueDate,
		Amount:        input.Amount,
		Description:   input.Description,
		Status:        models.PaymentStatusPending,
		PaymentMethod: method,
		ChequeNumber:  input.ChequeNumber,
	}

	if err := storage.DB.Create(&payment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "lease_payment.create", "LeasePayment", payment.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(payment)
}

// UpdateLeasePayment edits an installment. Status set here is a direct
// administrative override; the next ledger mutation recomputes it again.
func UpdateLeasePayment(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var payment models.LeasePayment
	res := storage.DB.Where("id = ?", id).Find(&payment)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease payment not found", ctx)
		return
	}

	var input UpdateLeasePaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.DueDate != nil {
		dueDate, ok := parseDate(*input.DueDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "dueDate must be a YYYY-MM-DD date", ctx)
			return
		}
		payment.DueDate = dueDate
	}
	if input.Amount != nil {
		payment.Amount = *input.Amount
	}
	if input.Description != nil {
		payment.Description = *input.Description
	}
	if input.PaymentMethod != nil {
		payment.PaymentMethod = *input.PaymentMethod
	}
	if input.ChequeNumber != nil {
		payment.ChequeNumber = input.ChequeNumber
	}
	if input.Status != nil {
		payment.Status = *input.Status
	}

	if err := storage.DB.Save(&payment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "lease_payment.update", "LeasePayment", payment.ID, input)
	ctx.JSON(payment)
}

func DeleteLeasePayment(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var payment models.LeasePayment
	res := storage.DB.Where("id = ?", id).Find(&payment)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease payment not found", ctx)
		return
	}

	// Transactions are owned by the installment and go with it.
	if err := storage.DB.Unscoped().Where("lease_payment_id = ?", payment.ID).Delete(&models.PaymentTransaction{}).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if payment.ChequeImageURL != nil {
		storage.DeleteDocument(*payment.ChequeImageURL)
	}
	if err := storage.DB.Unscoped().Delete(&payment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "lease_payment.delete", "LeasePayment", payment.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}

// UploadChequeImage stores a cheque scan and attaches its URL to the
// installment.
func UploadChequeImage(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var payment models.LeasePayment
	res := storage.DB.Where("id = ?", id).Find(&payment)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease payment not found", ctx)
		return
	}

	var input ChequeImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	upload := storage.UploadBase64Document(input.Image, fmt.Sprintf("cheque-%d-%d", payment.ID, time.Now().Unix()), "cheques")
	if !upload.Success {
		utils.CreateError(iris.StatusBadGateway, "Upload Failed", "Could not store the cheque image.", ctx)
		return
	}

	payment.ChequeImageURL = &upload.FilePath
	if err := storage.DB.Save(&payment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "lease_payment.cheque_upload", "LeasePayment", payment.ID, iris.Map{"url": upload.FilePath})
	ctx.JSON(iris.Map{"success": true, "filePath": upload.FilePath})
}

// AddPaymentTransaction records a payment event against an installment. The
// ledger rejects amounts above the remaining balance.
func AddPaymentTransaction(ctx iris.Context) {
	paymentID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input AddTransactionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	paymentDate, ok := parseDate(input.PaymentDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "paymentDate must be a YYYY-MM-DD date", ctx)
		return
	}

	documentURL := ""
	if input.Document != "" {
		upload := storage.UploadBase64Document(input.Document, fmt.Sprintf("receipt-%d-%d", paymentID, time.Now().Unix()), "receipts")
		if upload.Success {
			documentURL = upload.FilePath
		}
	}

	transaction, status, txErr := paymentSvc().AddTransaction(paymentID, services.TransactionInput{
		AmountPaid:    input.AmountPaid,
		PaymentDate:   paymentDate,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		DocumentURL:   documentURL,
	})
	if txErr != nil {
		respondServiceError(ctx, txErr)
		return
	}

	utils.Audit(ctx, "payment_transaction.create", "PaymentTransaction", transaction.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"transaction": transaction, "paymentStatus": status})
}

func UpdatePaymentTransaction(ctx iris.Context) {
	transactionID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UpdateTransactionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	patch := services.TransactionPatch{
		AmountPaid:    input.AmountPaid,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}
	if input.PaymentDate != nil {
		paymentDate, ok := parseDate(*input.PaymentDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "paymentDate must be a YYYY-MM-DD date", ctx)
			return
		}
		patch.PaymentDate = &paymentDate
	}

	transaction, status, txErr := paymentSvc().UpdateTransaction(transactionID, patch)
	if txErr != nil {
		respondServiceError(ctx, txErr)
		return
	}

	utils.Audit(ctx, "payment_transaction.update", "PaymentTransaction", transaction.ID, input)
	ctx.JSON(iris.Map{"transaction": transaction, "paymentStatus": status})
}

func DeletePaymentTransaction(ctx iris.Context) {
	transactionID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	status, txErr := paymentSvc().DeleteTransaction(transactionID)
	if txErr != nil {
		respondServiceError(ctx, txErr)
		return
	}

	utils.Audit(ctx, "payment_transaction.delete", "PaymentTransaction", transactionID, nil)
	ctx.JSON(iris.Map{"success": true, "paymentStatus": status})
}

// RequestPaymentExtension is the tenant-facing request to push a due date.
// Deliberately ungated by employee permissions.
func RequestPaymentExtension(ctx iris.Context) {
	paymentID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input RequestExtensionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	requestedDate, ok := parseDate(input.RequestedDueDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "requestedDueDate must be a YYYY-MM-DD date", ctx)
		return
	}

	payment, reqErr := paymentSvc().RequestExtension(paymentID, requestedDate, input.Reason)
	if reqErr != nil {
		respondServiceError(ctx, reqErr)
		return
	}

	notificationService.NotifyExtensionRequested(payment.ID, payment.LeaseID, requestedDate.Format("2006-01-02"))
	ctx.JSON(payment)
}

// ReviewPaymentExtension records the manager decision. The due date itself
// is never moved here; an approved extension is applied through a separate
// installment edit.
func ReviewPaymentExtension(ctx iris.Context) {
	paymentID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input ReviewExtensionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	payment, reviewErr := paymentSvc().ReviewExtension(paymentID, input.Approved, input.ManagerNotes)
	if reviewErr != nil {
		respondServiceError(ctx, reviewErr)
		return
	}

	utils.Audit(ctx, "lease_payment.extension_review", "LeasePayment", payment.ID, input)
	ctx.JSON(payment)
}
