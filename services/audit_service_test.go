package services

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"booking-backend/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestAuditLogAppendsRecord(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewAuditService(db)

	before := time.Now().UTC().Add(-time.Second)
	err := svc.Log(42, "DeleteBooking", "Deleted booking 7", "192.0.2.1")
	assert.NoError(t, err)

	var entries []models.AuditLog
	assert.NoError(t, db.Find(&entries).Error)
	assert.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, uint(42), entry.UserID)
	assert.Equal(t, "DeleteBooking", entry.Action)
	assert.Equal(t, "Deleted booking 7", entry.Details)
	assert.Equal(t, "192.0.2.1", entry.IPAddress)
	assert.True(t, entry.Timestamp.After(before), "timestamp is server-assigned")
}

func TestAuditLogTruncatesOverlongFields(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewAuditService(db)

	err := svc.Log(1,
		strings.Repeat("a", 80),
		strings.Repeat("d", 1500),
		strings.Repeat("9", 60),
	)
	assert.NoError(t, err)

	var entry models.AuditLog
	assert.NoError(t, db.First(&entry).Error)
	assert.Len(t, entry.Action, 50)
	assert.Len(t, entry.Details, 1000)
	assert.Len(t, entry.IPAddress, 45)
}

func TestAuditLogTruncationKeepsValidUTF8(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewAuditService(db)

	// Fill details right up to the limit so the next rune straddles the
	// 1000-byte cut. The truncated value must still be valid UTF-8.
	details := strings.Repeat("d", 999) + "éclair"
	assert.NoError(t, svc.Log(1, "EditBooking", details, "192.0.2.1"))

	var entry models.AuditLog
	assert.NoError(t, db.First(&entry).Error)
	assert.LessOrEqual(t, len(entry.Details), 1000)
	assert.True(t, utf8.ValidString(entry.Details))
	assert.Equal(t, strings.Repeat("d", 999), entry.Details)
}

func TestAuditRecentReturnsNewestFirst(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewAuditService(db)

	for i := 0; i < 5; i++ {
		assert.NoError(t, svc.Log(1, fmt.Sprintf("Action%d", i), "", ""))
	}

	entries, err := svc.Recent(3)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "Action4", entries[0].Action)
	assert.Equal(t, "Action3", entries[1].Action)
	assert.Equal(t, "Action2", entries[2].Action)
}

func TestAuditRecordSwallowsWriteFailure(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewAuditService(db)

	// Break the table so the insert fails; Record must not panic and must
	// not surface the error.
	assert.NoError(t, db.Migrator().DropTable(&models.AuditLog{}))

	assert.NotPanics(t, func() {
		svc.Record(1, "Login", "details", "127.0.0.1")
	})
}
