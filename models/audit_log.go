package models

import "time"

// AuditLog is append-only: rows are created by AuditService and never
// updated or deleted through the application.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;column:user_id" json:"user_id"`
	Action    string    `gorm:"size:50" json:"action"`
	Details   string    `gorm:"size:1000" json:"details"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	IPAddress string    `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
}
