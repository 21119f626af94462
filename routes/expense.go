package routes

import (
	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

type CreateExpenseInput struct {
	PropertyID  uint    `json:"propertyID" validate:"required"`
	UnitID      *uint   `json:"unitID"`
	Category    string  `json:"category" validate:"required,oneof=maintenance utilities cleaning government_fees other"`
	Description string  `json:"description" validate:"required,max=1024"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	ExpenseDate string  `json:"expenseDate" validate:"required"`
	Vendor      string  `json:"vendor" validate:"max=256"`
	ReceiptURL  string  `json:"receiptURL" validate:"omitempty,url"`
}

type UpdateExpenseInput struct {
	Category    *string  `json:"category" validate:"omitempty,oneof=maintenance utilities cleaning government_fees other"`
	Description *string  `json:"description" validate:"omitempty,max=1024"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	ExpenseDate *string  `json:"expenseDate"`
	Vendor      *string  `json:"vendor" validate:"omitempty,max=256"`
	ReceiptURL  *string  `json:"receiptURL" validate:"omitempty,url"`
}

func ListExpenses(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Expense{})
	if propertyID := ctx.URLParamDefault("property_id", ""); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if category := ctx.URLParamDefault("category", ""); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	query.Count(&total)

	var expenses []models.Expense
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("expense_date desc").Find(&expenses).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, expenses, page, perPage, total)
}

func CreateExpense(ctx iris.Context) {
	var input CreateExpenseInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	expenseDate, ok := parseDate(input.ExpenseDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation error", "expenseDate must be a YYYY-MM-DD date", ctx)
		return
	}

	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	expense := models.Expense{
		PropertyID:  input.PropertyID,
		UnitID:      input.UnitID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		ExpenseDate: expenseDate,
		Vendor:      input.Vendor,
		ReceiptURL:  input.ReceiptURL,
		RecordedBy:  claims.ID,
	}

	if err := storage.DB.Create(&expense).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "expense.create", "Expense", expense.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(expense)
}

func UpdateExpense(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var expense models.Expense
	res := storage.DB.Where("id = ?", id).Find(&expense)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Expense not found", ctx)
		return
	}

	var input UpdateExpenseInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.ExpenseDate != nil {
		expenseDate, ok := parseDate(*input.ExpenseDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "expenseDate must be a YYYY-MM-DD date", ctx)
			return
		}
		expense.ExpenseDate = expenseDate
	}
	if input.Vendor != nil {
		expense.Vendor = *input.Vendor
	}
	if input.ReceiptURL != nil {
		expense.ReceiptURL = *input.ReceiptURL
	}

	if err := storage.DB.Save(&expense).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "expense.update", "Expense", expense.ID, input)
	ctx.JSON(expense)
}

func DeleteExpense(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var expense models.Expense
	res := storage.DB.Where("id = ?", id).Find(&expense)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Expense not found", ctx)
		return
	}

	if err := storage.DB.Delete(&expense).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "expense.delete", "Expense", expense.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}
