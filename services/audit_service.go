package services

import (
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"booking-backend/models"
	"booking-backend/utils"
)

const (
	maxActionLen  = 50
	maxDetailsLen = 1000
	maxIPLen      = 45
)

// AuditService appends immutable audit records. It is a best-effort side
// channel: a failed audit write never fails the action being audited.
type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// Log appends one record with a server-assigned UTC timestamp. Over-length
// fields are truncated rather than rejected.
func (s *AuditService) Log(userID uint, action, details, ipAddress string) error {
	entry := models.AuditLog{
		UserID:    userID,
		Action:    truncate(action, maxActionLen),
		Details:   truncate(details, maxDetailsLen),
		IPAddress: truncate(ipAddress, maxIPLen),
		Timestamp: time.Now().UTC(),
	}
	return s.DB.Create(&entry).Error
}

// Record logs and swallows failures, reporting them to the operator log.
// State-changing handlers call this after a successful mutation; the
// mutation is never rolled back because the audit write failed.
func (s *AuditService) Record(userID uint, action, details, ipAddress string) {
	if err := s.Log(userID, action, details, ipAddress); err != nil {
		utils.GetLogger().WithFields(map[string]interface{}{
			"user_id": userID,
			"action":  action,
		}).Errorf("audit write failed: %v", err)
	}
}

// Recent returns the newest entries, newest first.
func (s *AuditService) Recent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []models.AuditLog
	err := s.DB.Order("timestamp DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// truncate cuts s to at most max bytes without splitting a rune, so details
// that embed names or emails stay valid UTF-8 after the cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
