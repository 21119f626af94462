package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	EmployeeID   uint           `json:"employeeID" gorm:"index;not null"`
	EmployeeName string         `json:"employeeName" gorm:"size:128"`
	Action       string         `json:"action" gorm:"size:64;index"`
	EntityType   string         `json:"entityType" gorm:"size:64;index"`
	EntityID     uint           `json:"entityID" gorm:"index"`
	Details      datatypes.JSON `json:"details"`
	IPAddress    string         `json:"ipAddress" gorm:"size:64"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"index"`
}
