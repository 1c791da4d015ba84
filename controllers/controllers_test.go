package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"booking-backend/controllers"
	"booking-backend/models"
	"booking-backend/routes"
	"booking-backend/services"
	"booking-backend/utils"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	roomUploads *services.UploadService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	storageRoot := t.TempDir()
	roomUploads := services.NewUploadService(filepath.Join(storageRoot, "rooms"), services.RoomImagePolicy())
	attachmentUploads := services.NewUploadService(filepath.Join(storageRoot, "attachments"), services.AttachmentPolicy())

	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db)

	router := routes.SetupRouter(
		controllers.NewAuthController(userService, auditService),
		controllers.NewBookingController(bookingService, roomService, auditService),
		controllers.NewRoomController(roomService),
		controllers.NewAdminController(userService, bookingService, roomService, auditService, roomUploads),
		controllers.NewUploadController(attachmentUploads, auditService),
		controllers.NewFileController(roomUploads),
	)

	return &testEnv{db: db, router: router, roomUploads: roomUploads}
}

func (env *testEnv) createUser(t *testing.T, email, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := models.User{Email: email, Password: string(hash), Role: role}
	assert.NoError(t, env.db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(user.ID, user.Role)
	assert.NoError(t, err)
	return token
}

func (env *testEnv) createRoom(t *testing.T, name string) models.Room {
	t.Helper()

	room := models.Room{Name: name, Description: "test room", PricePerNight: 100, MaxGuests: 2, RoomType: "Standard", IsAvailable: true}
	assert.NoError(t, env.db.Create(&room).Error)
	return room
}

func (env *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// doMultipart posts a multipart form with the given fields plus an optional
// file part named by fileField, carrying an explicit declared content type.
func (env *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, fileField, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		assert.NoError(t, err)
		_, err = part.Write(content)
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

// countBookingsInResponse unwraps the {"success":true,"data":[...]} envelope.
func countBookingsInResponse(t *testing.T, body []byte) int {
	t.Helper()

	var envelope struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(body, &envelope))
	return len(envelope.Data)
}

func (env *testEnv) auditEntries(t *testing.T, action string) []models.AuditLog {
	t.Helper()

	var entries []models.AuditLog
	assert.NoError(t, env.db.Where("action = ?", action).Find(&entries).Error)
	return entries
}
