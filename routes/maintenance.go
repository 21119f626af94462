package routes

import (
	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

type CreateMaintenanceContractInput struct {
	PropertyID    uint    `json:"propertyID" validate:"required"`
	VendorName    string  `json:"vendorName" validate:"required,max=256"`
	VendorPhone   string  `json:"vendorPhone" validate:"max=64"`
	Scope         string  `json:"scope" validate:"required,oneof=elevators hvac cleaning pest_control security general"`
	Description   string  `json:"description"`
	StartDate     string  `json:"startDate" validate:"required"`
	EndDate       string  `json:"endDate" validate:"required"`
	AnnualCost    float64 `json:"annualCost" validate:"required,gt=0"`
	ContractURL   string  `json:"contractURL" validate:"omitempty,url"`
	AutoRenews    bool    `json:"autoRenews"`
	ContactPerson string  `json:"contactPerson" validate:"max=256"`
}

type UpdateMaintenanceContractInput struct {
	VendorName    *string  `json:"vendorName" validate:"omitempty,max=256"`
	VendorPhone   *string  `json:"vendorPhone" validate:"omitempty,max=64"`
	Scope         *string  `json:"scope" validate:"omitempty,oneof=elevators hvac cleaning pest_control security general"`
	Description   *string  `json:"description"`
	StartDate     *string  `json:"startDate"`
	EndDate       *string  `json:"endDate"`
	AnnualCost    *float64 `json:"annualCost" validate:"omitempty,gt=0"`
	ContractURL   *string  `json:"contractURL" validate:"omitempty,url"`
	AutoRenews    *bool    `json:"autoRenews"`
	ContactPerson *string  `json:"contactPerson" validate:"omitempty,max=256"`
}

func ListMaintenanceContracts(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.MaintenanceContract{})
	if propertyID := ctx.URLParamDefault("property_id", ""); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if scope := ctx.URLParamDefault("scope", ""); scope != "" {
		query = query.Where("scope = ?", scope)
	}

	var total int64
	query.Count(&total)

	var contracts []models.MaintenanceContract
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("end_date").Find(&contracts).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, contracts, page, perPage, total)
}

func CreateMaintenanceContract(ctx iris.Context) {
	var input CreateMaintenanceContractInput
	if err := ctx.ReadJSON(&input); err != nil {
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

	contract := models.MaintenanceContract{
		PropertyID:    input.PropertyID,
		VendorName:    input.VendorName,
		VendorPhone:   input.VendorPhone,
		Scope:         input.Scope,
		Description:   input.Description,
		StartDate:     startDate,
		EndDate:       endDate,
		AnnualCost:    input.AnnualCost,
		ContractURL:   input.ContractURL,
		AutoRenews:    input.AutoRenews,
		ContactPerson: input.ContactPerson,
	}

	if err := storage.DB.Create(&contract).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "maintenance_contract.create", "MaintenanceContract", contract.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(contract)
}

func UpdateMaintenanceContract(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var contract models.MaintenanceContract
	res := storage.DB.Where("id = ?", id).Find(&contract)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Maintenance contract not found", ctx)
		return
	}

	var input UpdateMaintenanceContractInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.VendorName != nil {
		contract.VendorName = *input.VendorName
	}
	if input.VendorPhone != nil {
		contract.VendorPhone = *input.VendorPhone
	}
	if input.Scope != nil {
		contract.Scope = *input.Scope
	}
	if input.Description != nil {
		contract.Description = *input.Description
	}
	if input.StartDate != nil {
		startDate, ok := parseDate(*input.StartDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "startDate must be a YYYY-MM-DD date", ctx)
			return
		}
		contract.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, ok := parseDate(*input.EndDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "endDate must be a YYYY-MM-DD date", ctx)
			return
		}
		contract.EndDate = endDate
	}
	if input.AnnualCost != nil {
		contract.AnnualCost = *input.AnnualCost
	}
	if input.ContractURL != nil {
		contract.ContractURL = *input.ContractURL
	}
	if input.AutoRenews != nil {
		contract.AutoRenews = *input.AutoRenews
	}
	if input.ContactPerson != nil {
		contract.ContactPerson = *input.ContactPerson
	}

	if err := storage.DB.Save(&contract).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "maintenance_contract.update", "MaintenanceContract", contract.ID, input)
	ctx.JSON(contract)
}

func DeleteMaintenanceContract(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var contract models.MaintenanceContract
	res := storage.DB.Where("id = ?", id).Find(&contract)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Maintenance contract not found", ctx)
		return
	}

	if err := storage.DB.Delete(&contract).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "maintenance_contract.delete", "MaintenanceContract", contract.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}
