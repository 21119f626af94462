package routes

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/services"
	"github.com/Uaq907/estateflow-sub000/storage"
	"github.com/Uaq907/estateflow-sub000/utils"

	"github.com/kataras/iris/v12"
)

const dashboardCacheKey = "dashboard:stats"

type dashboardStats struct {
	Properties      int64   `json:"properties"`
	Units           int64   `json:"units"`
	OccupiedUnits   int64   `json:"occupiedUnits"`
	ActiveLeases    int64   `json:"activeLeases"`
	OpenLegalCases  int64   `json:"openLegalCases"`
	OverdueCount    int64   `json:"overdueCount"`
	OutstandingDues float64 `json:"outstandingDues"`
	GeneratedAt     string  `json:"generatedAt"`
}

// GetDashboardStats serves headline counts and outstanding dues, cached in
// redis for one minute.
func GetDashboardStats(ctx iris.Context) {
	bg := context.Background()

	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(bg, dashboardCacheKey).Result(); err == nil && cached != "" {
			var stats dashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				ctx.JSON(stats)
				return
			}
		}
	}

	now := time.Now()
	var stats dashboardStats
	stats.GeneratedAt = now.Format(time.RFC3339)

	storage.DB.Model(&models.Property{}).Count(&stats.Properties)
	storage.DB.Model(&models.Unit{}).Count(&stats.Units)
	storage.DB.Model(&models.Unit{}).Where("status = ?", models.UnitStatusOccupied).Count(&stats.OccupiedUnits)
	storage.DB.Model(&models.Lease{}).Where("status = ?", models.LeaseStatusActive).Count(&stats.ActiveLeases)
	storage.DB.Model(&models.LegalCase{}).Where("status != ?", models.LegalCaseStatusClosed).Count(&stats.OpenLegalCases)

	var unpaid []models.LeasePayment
	if err := storage.DB.Preload("Transactions").
		Where("status != ?", models.PaymentStatusPaid).
		Find(&unpaid).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for i := range unpaid {
		derived := services.ComputeStatus(&unpaid[i], now)
		stats.OutstandingDues += derived.Balance
		if derived.Status == models.PaymentStatusOverdue {
			stats.OverdueCount++
		}
	}

	if storage.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			storage.Redis.Set(bg, dashboardCacheKey, payload, time.Minute)
		}
	}

	ctx.JSON(stats)
}
