package routes

import (
	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

type CreateUnitInput struct {
	PropertyID uint    `json:"propertyID" validate:"required"`
	UnitNumber string  `json:"unitNumber" validate:"required,max=64"`
	Floor      string  `json:"floor" validate:"max=32"`
	UnitType   string  `json:"unitType" validate:"required,oneof=apartment villa office shop warehouse"`
	Bedrooms   int     `json:"bedrooms" validate:"min=0"`
	Bathrooms  int     `json:"bathrooms" validate:"min=0"`
	SizeSqm    float64 `json:"sizeSqm" validate:"min=0"`
	Notes      string  `json:"notes"`
}

type UpdateUnitInput struct {
	UnitNumber *string  `json:"unitNumber" validate:"omitempty,max=64"`
	Floor      *string  `json:"floor" validate:"omitempty,max=32"`
	UnitType   *string  `json:"unitType" validate:"omitempty,oneof=apartment villa office shop warehouse"`
	Bedrooms   *int     `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms  *int     `json:"bathrooms" validate:"omitempty,min=0"`
	SizeSqm    *float64 `json:"sizeSqm" validate:"omitempty,min=0"`
	Status     *string  `json:"status" validate:"omitempty,oneof=Vacant Occupied 'Under Maintenance'"`
	Notes      *string  `json:"notes"`
}

func ListUnits(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Unit{})
	if propertyID := ctx.URLParamDefault("property_id", ""); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if status := ctx.URLParamDefault("status", ""); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var units []models.Unit
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("id").Find(&units).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, units, page, perPage, total)
}

func GetUnit(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var unit models.Unit
	res := storage.DB.Preload("Leases").Preload("Assets").Where("id = ?", id).Find(&unit)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Unit not found", ctx)
		return
	}

	ctx.JSON(unit)
}

func CreateUnit(ctx iris.Context) {
	var input CreateUnitInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	res := storage.DB.Where("id = ?", input.PropertyID).Find(&property)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	unit := models.Unit{
		PropertyID: input.PropertyID,
		UnitNumber: input.UnitNumber,
		Floor:      input.Floor,
		UnitType:   input.UnitType,
		Bedrooms:   input.Bedrooms,
		Bathrooms:  input.Bathrooms,
		SizeSqm:    input.SizeSqm,
		Status:     models.UnitStatusVacant,
		Notes:      input.Notes,
	}

	if err := storage.DB.Create(&unit).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "unit.create", "Unit", unit.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(unit)
}

func UpdateUnit(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var unit models.Unit
	res := storage.DB.Where("id = ?", id).Find(&unit)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Unit not found", ctx)
		return
	}

	var input UpdateUnitInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Status may not be forced to Vacant/Occupied here while an active lease
	// exists; lease assignment and renewal own that transition.
	if input.Status != nil && unit.ActiveLeaseID != nil && *input.Status != models.UnitStatusOccupied {
		utils.CreateError(iris.StatusConflict, "Conflict", "Unit has an active lease; end it before changing the unit status.", ctx)
		return
	}

	if input.UnitNumber != nil {
		unit.UnitNumber = *input.UnitNumber
	}
	if input.Floor != nil {
		unit.Floor = *input.Floor
	}
	if input.UnitType != nil {
		unit.UnitType = *input.UnitType
	}
	if input.Bedrooms != nil {
		unit.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		unit.Bathrooms = *input.Bathrooms
	}
	if input.SizeSqm != nil {
		unit.SizeSqm = *input.SizeSqm
	}
	if input.Status != nil {
		unit.Status = *input.Status
	}
	if input.Notes != nil {
		unit.Notes = *input.Notes
	}

	if err := storage.DB.Save(&unit).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "unit.update", "Unit", unit.ID, input)
	ctx.JSON(unit)
}

func DeleteUnit(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var unit models.Unit
	res := storage.DB.Where("id = ?", id).Find(&unit)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Unit not found", ctx)
		return
	}

	if unit.ActiveLeaseID != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "Unit has an active lease and cannot be deleted.", ctx)
		return
	}

	if err := storage.DB.Delete(&unit).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "unit.delete", "Unit", unit.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}
