package routes

import (
	"encoding/json"

	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

type CreatePropertyInput struct {
	Name         string   `json:"name" validate:"required,max=256"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=residential commercial mixed_use"`
	AddressLine1 string   `json:"addressLine1" validate:"required,max=512"`
	AddressLine2 string   `json:"addressLine2" validate:"max=512"`
	City         string   `json:"city" validate:"required,max=256"`
	Emirate      string   `json:"emirate" validate:"max=256"`
	Country      string   `json:"country" validate:"max=256"`
	Lat          float32  `json:"lat"`
	Lng          float32  `json:"lng"`
	OwnerName    string   `json:"ownerName" validate:"max=256"`
	OwnerPhone   string   `json:"ownerPhone" validate:"max=64"`
	OwnerEmail   string   `json:"ownerEmail" validate:"omitempty,email"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
}

type UpdatePropertyInput struct {
	Name         *string  `json:"name" validate:"omitempty,max=256"`
	PropertyType *string  `json:"propertyType" validate:"omitempty,oneof=residential commercial mixed_use"`
	AddressLine1 *string  `json:"addressLine1" validate:"omitempty,max=512"`
	AddressLine2 *string  `json:"addressLine2" validate:"omitempty,max=512"`
	City         *string  `json:"city" validate:"omitempty,max=256"`
	Emirate      *string  `json:"emirate" validate:"omitempty,max=256"`
	Country      *string  `json:"country" validate:"omitempty,max=256"`
	OwnerName    *string  `json:"ownerName" validate:"omitempty,max=256"`
	OwnerPhone   *string  `json:"ownerPhone" validate:"omitempty,max=64"`
	OwnerEmail   *string  `json:"ownerEmail" validate:"omitempty,email"`
	Description  *string  `json:"description"`
	Images       []string `json:"images"`
	IsActive     *bool    `json:"isActive"`
}

func ListProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Property{})
	if q := ctx.URLParamDefault("q", ""); q != "" {
		search := "%" + q + "%"
		query = query.Where("lower(name) LIKE lower(?) OR lower(city) LIKE lower(?)", search, search)
	}

	var total int64
	query.Count(&total)

	var properties []models.Property
	if err := query.Preload("Units").Offset((page - 1) * perPage).Limit(perPage).Order("id").Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	res := storage.DB.Preload("Units").Where("id = ?", id).Find(&property)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	ctx.JSON(property)
}

func CreateProperty(ctx iris.Context) {
	var input CreatePropertyInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, _ := json.Marshal(images)

	property := models.Property{
		Name:         input.Name,
		PropertyType: input.PropertyType,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		Emirate:      input.Emirate,
		Country:      input.Country,
		Lat:          input.Lat,
		Lng:          input.Lng,
		OwnerName:    input.OwnerName,
		OwnerPhone:   input.OwnerPhone,
		OwnerEmail:   input.OwnerEmail,
		Description:  input.Description,
		Images:       string(imagesJSON),
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.create", "Property", property.ID, input)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

func UpdateProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	res := storage.DB.Where("id = ?", id).Find(&property)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		property.Name = *input.Name
	}
	if input.PropertyType != nil {
		property.PropertyType = *input.PropertyType
	}
	if input.AddressLine1 != nil {
		property.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		property.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		property.City = *input.City
	}
	if input.Emirate != nil {
		property.Emirate = *input.Emirate
	}
	if input.Country != nil {
		property.Country = *input.Country
	}
	if input.OwnerName != nil {
		property.OwnerName = *input.OwnerName
	}
	if input.OwnerPhone != nil {
		property.OwnerPhone = *input.OwnerPhone
	}
	if input.OwnerEmail != nil {
		property.OwnerEmail = *input.OwnerEmail
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Images != nil {
		imagesJSON, _ := json.Marshal(input.Images)
		property.Images = string(imagesJSON)
	}
	if input.IsActive != nil {
		property.IsActive = input.IsActive
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.update", "Property", property.ID, input)
	ctx.JSON(property)
}

func DeleteProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	res := storage.DB.Where("id = ?", id).Find(&property)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	var unitCount int64
	storage.DB.Model(&models.Unit{}).Where("property_id = ?", property.ID).Count(&unitCount)
	if unitCount > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "Property still has units; delete or move them first.", ctx)
		return
	}

	if err := storage.DB.Delete(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.delete", "Property", property.ID, nil)
	ctx.JSON(iris.Map{"success": true})
}
