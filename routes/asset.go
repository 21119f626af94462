package routes

import (
	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

type CreateAssetInput struct {
	UnitID        uint     `json:"unitID" validate:"required"`
	Name          string   `json:"name" validate:"required,max=256"`
	Category      string   `json:"category" validate:"required,oneof=appliance furniture fixture hvac"`
	SerialNumber  string   `json:"serialNumber" validate:"max=128"`
	PurchaseDate  *string  `json:"purchaseDate"`
	PurchasePrice *float64 `json:"purchasePrice" validate:"omitempty,gt=0"`
	Condition     string   `json:"condition" validate:"omitempty,oneof=New Good Fair Damaged"`
	ImageURL      string   `json:"imageURL" validate:"omitempty,url"`
}

type UpdateAssetInput struct {
	Name          *string  `json:"name" validate:"omitempty,max=256"`
	Category      *string  `json:"category" validate:"omitempty,oneof=appliance furniture fixture hvac"`
	SerialNumber  *string  `json:"serialNumber" validate:"omitempty,max=128"`
	PurchasePrice *float64 `json:"purchasePrice" validate:"omitempty,gt=0"`
	Condition     *string  `json:"condition" validate:"omitempty,oneof=New Good Fair Damaged"`
	ImageURL      *string  `json:"imageURL" validate:"omitempty,url"`
}

func ListUnitAssets(ctx iris.Context) {
	unitID := ctx.Params().Get("id")

	var assets []models.Asset
	if err := storage.DB.Where("unit_id = ?", unitID).Order("id").Find(&assets).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"assets": assets})
}

func CreateAsset(ctx iris.Context) {
	var input CreateAssetInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var unit models.Unit
	res := storage.DB.Where("id = ?", input.UnitID).Find(&unit)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Unit not found", ctx)
		return
	}

	condition := input.Condition
	if condition == "" {
		condition = "Good"
	}

	asset := models.Asset{
		UnitID:        input.UnitID,
		Name:          input.Name,
		Category:      input.Category,
		SerialNumber:  input.SerialNumber,
		PurchasePrice: input.PurchasePrice,
		Condition:     condition,
		ImageURL:      input.ImageURL,
	}

	if input.PurchaseDate != nil {
		purchaseDate, ok := parseDate(*input.PurchaseDate)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation error", "purchaseDate must be a YYYY-MM-DD date", ctx)
			return
		}
		asset.PurchaseDate = &purchaseDate
	}

	if err := storage.DB.Create(&asset).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "asset.create", "Asset", asset.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(asset)
}

func UpdateAsset(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var asset models.Asset
	res := storage.DB.Where("id = ?", id).Find(&asset)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Asset not found", ctx)
		return
	}

	var input UpdateAssetInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		asset.Name = *input.Name
	}
	if input.Category != nil {
		asset.Category = *input.Category
	}
	if input.SerialNumber != nil {
		asset.SerialNumber = *input.SerialNumber
	}
	if input.PurchasePrice != nil {
		asset.PurchasePrice = input.PurchasePrice
	}
	if input.Condition != nil {
		asset.Condition = *input.Condition
	}
	if input.ImageURL != nil {
		asset.ImageURL = *input.ImageURL
	}

	if err := storage.DB.Save(&asset).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "asset.update", "Asset", asset.ID, input)
	ctx.JSON(asset)
}

func DeleteAsset(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var asset models.Asset
	res := storage.DB.Where("id = ?", id).Find(&asset)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Asset not found", ctx)
		return
	}

	if err := storage.DB.Delete(&asset).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "asset.delete", "Asset", asset.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}
