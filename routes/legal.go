package routes

import (
	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

type CreateLegalCaseInput struct {
	LeaseID       uint     `json:"leaseID" validate:"required"`
	CaseType      string   `json:"caseType" validate:"required,oneof=eviction collection dispute"`
	CaseNumber    string   `json:"caseNumber" validate:"max=128"`
	Court         string   `json:"court" validate:"max=256"`
	FiledDate     *string  `json:"filedDate"`
	HearingDate   *string  `json:"hearingDate"`
	ClaimedAmount *float64 `json:"claimedAmount" validate:"omitempty,gt=0"`
	Summary       string   `json:"summary"`
	DocumentURL   string   `json:"documentURL" validate:"omitempty,url"`
}

type UpdateLegalCaseInput struct {
	CaseNumber    *string  `json:"caseNumber" validate:"omitempty,max=128"`
	Court         *string  `json:"court" validate:"omitempty,max=256"`
	Status        *string  `json:"status" validate:"omitempty,oneof=Open 'In Progress' Closed"`
	FiledDate     *string  `json:"filedDate"`
	HearingDate   *string  `json:"hearingDate"`
	ClosedDate    *string  `json:"closedDate"`
	ClaimedAmount *float64 `json:"claimedAmount" validate:"omitempty,gt=0"`
	Summary       *string  `json:"summary"`
	Outcome       *string  `json:"outcome"`
	DocumentURL   *string  `json:"documentURL" validate:"omitempty,url"`
}

func ListLegalCases(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.LegalCase{})
	if leaseID := ctx.URLParamDefault("lease_id", ""); leaseID != "" {
		query = query.Where("lease_id = ?", leaseID)
	}
	if status := ctx.URLParamDefault("status", ""); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var cases []models.LegalCase
	if err := query.Preload("Lease").Offset((page - 1) * perPage).Limit(perPage).Order("id desc").Find(&cases).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, cases, page, perPage, total)
}

func CreateLegalCase(ctx iris.Context) {
	var input CreateLegalCaseInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var lease models.Lease
	res := storage.DB.Where("id = ?", input.LeaseID).Find(&lease)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Lease not found", ctx)
		return
	}

	legalCase := models.LegalCase{
		LeaseID:       input.LeaseID,
		CaseType:      input.CaseType,
		CaseNumber:    input.CaseNumber,
		Court:         input.Court,
		Status:        models.LegalCaseStatusOpen,
		ClaimedAmount: input.ClaimedAmount,
		Summary:       input.Summary,
		DocumentURL:   input.DocumentURL,
	}

	if input.FiledDate != nil {
		filedDate, ok := parseDate(*input.FiledDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "filedDate must be a YYYY-MM-DD date", ctx)
			return
		}
		legalCase.FiledDate = &filedDate
	}
	if input.HearingDate != nil {
		hearingDate, ok := parseDate(*input.HearingDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "hearingDate must be a YYYY-MM-DD date", ctx)
			return
		}
		legalCase.HearingDate = &hearingDate
	}

	if err := storage.DB.Create(&legalCase).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "legal_case.create", "LegalCase", legalCase.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(legalCase)
}

func UpdateLegalCase(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var legalCase models.LegalCase
	res := storage.DB.Where("id = ?", id).Find(&legalCase)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Legal case not found", ctx)
		return
	}

	var input UpdateLegalCaseInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.CaseNumber != nil {
		legalCase.CaseNumber = *input.CaseNumber
	}
	if input.Court != nil {
		legalCase.Court = *input.Court
	}
	if input.Status != nil {
		legalCase.Status = *input.Status
	}
	if input.FiledDate != nil {
		filedDate, ok := parseDate(*input.FiledDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "filedDate must be a YYYY-MM-DD date", ctx)
			return
		}
		legalCase.FiledDate = &filedDate
	}
	if input.HearingDate != nil {
		hearingDate, ok := parseDate(*input.HearingDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "hearingDate must be a YYYY-MM-DD date", ctx)
			return
		}
		legalCase.HearingDate = &hearingDate
	}
	if input.ClosedDate != nil {
		closedDate, ok := parseDate(*input.ClosedDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "closedDate must be a YYYY-MM-DD date", ctx)
			return
		}
		legalCase.ClosedDate = &closedDate
	}
	if input.ClaimedAmount != nil {
		legalCase.ClaimedAmount = input.ClaimedAmount
	}
	if input.Summary != nil {
		legalCase.Summary = *input.Summary
	}
	if input.Outcome != nil {
		legalCase.Outcome = *input.Outcome
	}
	if input.DocumentURL != nil {
		legalCase.DocumentURL = *input.DocumentURL
	}

	if err := storage.DB.Save(&legalCase).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "legal_case.update", "LegalCase", legalCase.ID, input)
	ctx.JSON(legalCase)
}

func DeleteLegalCase(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var legalCase models.LegalCase
	res := storage.DB.Where("id = ?", id).Find(&legalCase)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Legal case not found", ctx)
		return
	}

	if err := storage.DB.Delete(&legalCase).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "legal_case.delete", "LegalCase", legalCase.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}
