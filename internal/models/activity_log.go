package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is one audit row per mutating action. Rows are never updated
// or deleted; deleting the actor clears user_id and keeps the row.
type ActivityLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       *uint          `gorm:"index" json:"user_id"`
	User         *User          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Action       string         `gorm:"size:100;not null;index" json:"action"`
	ResourceType string         `gorm:"size:100;not null;index:idx_activity_logs_resource,priority:1" json:"resource_type"`
	ResourceID   string         `gorm:"size:100;index:idx_activity_logs_resource,priority:2" json:"resource_id"`
	Details      datatypes.JSON `json:"details"`
	IPAddress    string         `gorm:"size:45" json:"ip_address"`
	UserAgent    string         `gorm:"size:500" json:"user_agent"`
	CreatedAt    time.Time      `gorm:"not null;index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
