package routes

import (
	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

type CreateTenantInput struct {
	Name             string `json:"name" validate:"required,max=256"`
	Email            string `json:"email" validate:"omitempty,email"`
	PhoneNumber      string `json:"phoneNumber" validate:"max=64"`
	Nationality      string `json:"nationality" validate:"max=128"`
	EmiratesIDNumber string `json:"emiratesIDNumber" validate:"max=64"`
	PassportNumber   string `json:"passportNumber" validate:"max=64"`
	IDDocumentURL    string `json:"idDocumentURL" validate:"omitempty,url"`
	IsCompany        bool   `json:"isCompany"`
	Notes            string `json:"notes"`
}

type UpdateTenantInput struct {
	Name             *string `json:"name" validate:"omitempty,max=256"`
	Email            *string `json:"email" validate:"omitempty,email"`
	PhoneNumber      *string `json:"phoneNumber" validate:"omitempty,max=64"`
	Nationality      *string `json:"nationality" validate:"omitempty,max=128"`
	EmiratesIDNumber *string `json:"emiratesIDNumber" validate:"omitempty,max=64"`
	PassportNumber   *string `json:"passportNumber" validate:"omitempty,max=64"`
	IDDocumentURL    *string `json:"idDocumentURL" validate:"omitempty,url"`
	IsCompany        *bool   `json:"isCompany"`
	Notes            *string `json:"notes"`
}

func ListTenants(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Tenant{})
	if q := ctx.URLParamDefault("q", ""); q != "" {
		search := "%" + q + "%"
		query = query.Where("lower(name) LIKE lower(?) OR lower(email) LIKE lower(?) OR phone_number LIKE ?", search, search, search)
	}

	var total int64
	query.Count(&total)

	var tenants []models.Tenant
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("id").Find(&tenants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, tenants, page, perPage, total)
}

func GetTenant(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var tenant models.Tenant
	res := storage.DB.Preload("Leases").Where("id = ?", id).Find(&tenant)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Tenant not found", ctx)
		return
	}

	ctx.JSON(tenant)
}

func CreateTenant(ctx iris.Context) {
	var input CreateTenantInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	tenant := models.Tenant{
		Name:             input.Name,
		Email:            input.Email,
		PhoneNumber:      input.PhoneNumber,
		Nationality:      input.Nationality,
		EmiratesIDNumber: input.EmiratesIDNumber,
		PassportNumber:   input.PassportNumber,
		IDDocumentURL:    input.IDDocumentURL,
		IsCompany:        input.IsCompany,
		Notes:            input.Notes,
	}

	if err := storage.DB.Create(&tenant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "tenant.create", "Tenant", tenant.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(tenant)
}

func UpdateTenant(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var tenant models.Tenant
	res := storage.DB.Where("id = ?", id).Find(&tenant)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Tenant not found", ctx)
		return
	}

	var input UpdateTenantInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.Email != nil {
		tenant.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		tenant.PhoneNumber = *input.PhoneNumber
	}
	if input.Nationality != nil {
		tenant.Nationality = *input.Nationality
	}
	if input.EmiratesIDNumber != nil {
		tenant.EmiratesIDNumber = *input.EmiratesIDNumber
	}
	if input.PassportNumber != nil {
		tenant.PassportNumber = *input.PassportNumber
	}
	if input.IDDocumentURL != nil {
		tenant.IDDocumentURL = *input.IDDocumentURL
	}
	if input.IsCompany != nil {
		tenant.IsCompany = *input.IsCompany
	}
	if input.Notes != nil {
		tenant.Notes = *input.Notes
	}

	if err := storage.DB.Save(&tenant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "tenant.update", "Tenant", tenant.ID, input)
	ctx.JSON(tenant)
}

func DeleteTenant(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var tenant models.Tenant
	res := storage.DB.Where("id = ?", id).Find(&tenant)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Tenant not found", ctx)
		return
	}

	var activeLeases int64
	storage.DB.Model(&models.Lease{}).Where("tenant_id = ? AND status = ?", tenant.ID, models.LeaseStatusActive).Count(&activeLeases)
	if activeLeases > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "Tenant has an active lease and cannot be deleted.", ctx)
		return
	}

	if err := storage.DB.Delete(&tenant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "tenant.delete", "Tenant", tenant.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}
