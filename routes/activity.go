package routes

import (
	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

// ListActivityLog returns the audit trail, newest first, filterable by
// employee, entity type and action.
func ListActivityLog(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if perPage <= 0 || perPage > 200 {
		perPage = 50
	}

	query := storage.DB.Model(&models.ActivityLog{})
	if employeeID := ctx.URLParamDefault("employee_id", ""); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if entityType := ctx.URLParamDefault("entity_type", ""); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if action := ctx.URLParamDefault("action", ""); action != "" {
		query = query.Where("action = ?", action)
	}

	var total int64
	query.Count(&total)

	var entries []models.ActivityLog
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Order("id desc").Find(&entries).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, entries, page, perPage, total)
}
