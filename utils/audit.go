package utils

import (
	"encoding/json"
	"net"

	"github.com/Uaq907/estateflow-sub000/models"
	"github.com/Uaq907/estateflow-sub000/storage"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// Audit writes one activity-log row for a successful mutation. Failed
// operations are never audited; they only reach the process log.
func Audit(ctx iris.Context, action, entityType string, entityID uint, details interface{}) {
	var detailsJSON []byte
	if details != nil {
		if d, err := json.Marshal(details); err == nil {
			detailsJSON = d
		}
	}

	var employeeID uint
	var employeeName string
	if tok := jsonWT.Get(ctx); tok != nil {
		if at, ok := tok.(*AccessToken); ok {
			employeeID = at.ID
			var u models.User
			if err := storage.DB.Select("id, first_name, last_name").First(&u, at.ID).Error; err == nil {
				employeeName = u.FirstName + " " + u.LastName
			}
		}
	}

	entry := models.ActivityLog{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Action:       action,
		EntityType:   entityType,
		EntityID:     entityID,
		Details:      detailsJSON,
		IPAddress:    clientIP(ctx),
	}
	storage.DB.Create(&entry)
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
