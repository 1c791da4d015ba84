package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"booking-backend/middleware"
	"booking-backend/models"
	"booking-backend/services"
	"booking-backend/utils"
)

type adminCreateBookingPayload struct {
	UserID      uint   `json:"user_id" binding:"required"`
	RoomID      uint   `json:"room_id" binding:"required"`
	ServiceType string `json:"service_type"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
	Status      string `json:"status"`
}

type updateStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// AdminController covers user management, booking management, the room
// catalog and the audit trail. Every route behind it runs AuthRequired +
// AdminRequired first.
type AdminController struct {
	Users    *services.UserService
	Bookings *services.BookingService
	Rooms    *services.RoomService
	Audit    *services.AuditService

	// RoomUploads carries the room-image policy (5 MiB, image types only),
	// not the generic attachment policy.
	RoomUploads *services.UploadService
}

func NewAdminController(
	users *services.UserService,
	bookings *services.BookingService,
	rooms *services.RoomService,
	audit *services.AuditService,
	roomUploads *services.UploadService,
) *AdminController {
	return &AdminController{
		Users:       users,
		Bookings:    bookings,
		Rooms:       rooms,
		Audit:       audit,
		RoomUploads: roomUploads,
	}
}

// Summary returns the dashboard counters.
func (ctrl *AdminController) Summary(c *gin.Context) {
	db := ctrl.Bookings.DB

	var totalBookings, pendingBookings, totalUsers, totalRooms int64
	db.Model(&models.Booking{}).Count(&totalBookings)
	db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending).Count(&pendingBookings)
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.Room{}).Count(&totalRooms)

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"total_bookings":   totalBookings,
		"pending_bookings": pendingBookings,
		"total_users":      totalUsers,
		"total_rooms":      totalRooms,
	})
}

// ---------------------------
// User management
// ---------------------------

func (ctrl *AdminController) GetUsers(c *gin.Context) {
	users, err := ctrl.Users.ListAll()
	if err != nil {
		utils.GetLogger().Errorf("admin list users: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list users")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, users)
}

func (ctrl *AdminController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	p := middleware.GetPrincipal(c)

	user, err := ctrl.Users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.GetLogger().Errorf("admin delete user %d: lookup: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load user")
		return
	}

	// Self-deletion is a user-facing error, not a 403: the admin is
	// authorized for the endpoint, just not for this target.
	if services.IsSelfTarget(p, user.ID) {
		utils.JSONError(c, http.StatusBadRequest, "you cannot delete your own account")
		return
	}

	if err := ctrl.Users.DeleteWithBookings(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.GetLogger().Errorf("admin delete user %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete user")
		return
	}

	ctrl.Audit.Record(p.UserID, "AdminDeleteUser", "Admin deleted user: "+user.Email, c.ClientIP())

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "user deleted"})
}

// ---------------------------
// Booking management
// ---------------------------

func (ctrl *AdminController) CreateBooking(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	var payload adminCreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "user_id, room_id, check_in and check_out are required")
		return
	}

	status := payload.Status
	if status == "" {
		status = models.BookingStatusPending
	}
	if !models.ValidBookingStatus(status) {
		utils.JSONError(c, http.StatusBadRequest, "status must be Pending, Confirmed or Cancelled")
		return
	}

	checkIn, err := parseDate(payload.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in must be a date in YYYY-MM-DD format")
		return
	}
	checkOut, err := parseDate(payload.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_out must be a date in YYYY-MM-DD format")
		return
	}
	if !checkOut.After(*checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "check_out must be after check_in")
		return
	}

	if _, err := ctrl.Users.GetByID(payload.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusBadRequest, "user not found")
			return
		}
		utils.GetLogger().Errorf("admin create booking: user lookup: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		return
	}
	if _, err := ctrl.Rooms.GetByID(payload.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusBadRequest, "room not found")
			return
		}
		utils.GetLogger().Errorf("admin create booking: room lookup: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		return
	}

	booking := models.Booking{
		UserID:       payload.UserID,
		RoomID:       payload.RoomID,
		ServiceType:  payload.ServiceType,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       status,
	}
	if err := ctrl.Bookings.Create(&booking); err != nil {
		utils.GetLogger().Errorf("admin create booking: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		return
	}

	ctrl.Audit.Record(p.UserID, "AdminCreateBooking",
		fmt.Sprintf("Admin created booking for user %d: %s", booking.UserID, booking.ServiceType),
		c.ClientIP())

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *AdminController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	var payload updateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	if !models.ValidBookingStatus(payload.Status) {
		utils.JSONError(c, http.StatusBadRequest, "status must be Pending, Confirmed or Cancelled")
		return
	}

	booking, err := ctrl.Bookings.UpdateStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrConflict):
			utils.JSONError(c, http.StatusInternalServerError, "booking was modified concurrently")
		default:
			utils.GetLogger().Errorf("admin update status %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update status")
		}
		return
	}

	p := middleware.GetPrincipal(c)
	ctrl.Audit.Record(p.UserID, "AdminUpdateStatus",
		fmt.Sprintf("Admin changed booking %d status to %s", id, payload.Status), c.ClientIP())

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ---------------------------
// Room catalog
// ---------------------------

func (ctrl *AdminController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Rooms.ListAll()
	if err != nil {
		utils.GetLogger().Errorf("admin list rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// roomFromForm reads the multipart catalog fields. Returns a user-facing
// message when a field fails its constraint.
func roomFromForm(c *gin.Context) (models.Room, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price_per_night")), 64)
	if err != nil {
		return models.Room{}, errors.New("price_per_night must be a number")
	}
	maxGuests, err := strconv.Atoi(strings.TrimSpace(c.PostForm("max_guests")))
	if err != nil {
		return models.Room{}, errors.New("max_guests must be a number")
	}

	room := models.Room{
		Name:          strings.TrimSpace(c.PostForm("name")),
		Description:   strings.TrimSpace(c.PostForm("description")),
		PricePerNight: price,
		MaxGuests:     maxGuests,
		RoomType:      strings.TrimSpace(c.PostForm("room_type")),
		IsAvailable:   c.DefaultPostForm("is_available", "true") != "false",
	}

	if raw := strings.TrimSpace(c.PostForm("amenities")); raw != "" {
		if !json.Valid([]byte(raw)) {
			return models.Room{}, errors.New("amenities must be valid JSON")
		}
		room.Amenities = datatypes.JSON(raw)
	}

	if err := services.ValidateRoom(room); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (ctrl *AdminController) CreateRoom(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	room, err := roomFromForm(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Field validation done; only now may the image touch disk.
	if fh, err := c.FormFile("image"); err == nil {
		storedName, err := ctrl.RoomUploads.SaveMultipart(fh)
		if err != nil {
			if isUploadRejection(err) {
				utils.JSONError(c, http.StatusBadRequest, err.Error())
				return
			}
			utils.GetLogger().Errorf("admin create room: image: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to store image")
			return
		}
		room.ImagePath = storedName
	}

	if err := ctrl.Rooms.Create(&room); err != nil {
		utils.GetLogger().Errorf("admin create room: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}

	ctrl.Audit.Record(p.UserID, "AdminCreateRoom", "Admin created room: "+room.Name, c.ClientIP())

	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *AdminController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	p := middleware.GetPrincipal(c)

	existing, err := ctrl.Rooms.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.GetLogger().Errorf("admin update room %d: lookup: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}

	room, err := roomFromForm(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	// New image: store it first, keep the old name around, and only remove
	// the old artifact after the row update went through. If persistence
	// fails we orphan the new file rather than leave the room pointing at
	// a missing one.
	oldImage := ""
	room.ImagePath = existing.ImagePath
	if fh, err := c.FormFile("image"); err == nil {
		storedName, err := ctrl.RoomUploads.SaveMultipart(fh)
		if err != nil {
			if isUploadRejection(err) {
				utils.JSONError(c, http.StatusBadRequest, err.Error())
				return
			}
			utils.GetLogger().Errorf("admin update room %d: image: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to store image")
			return
		}
		oldImage = existing.ImagePath
		room.ImagePath = storedName
	}

	updated, err := ctrl.Rooms.Update(id, room)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "room not found")
		case errors.Is(err, services.ErrConflict):
			utils.JSONError(c, http.StatusInternalServerError, "room was modified concurrently")
		default:
			utils.GetLogger().Errorf("admin update room %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update room")
		}
		return
	}

	if oldImage != "" && oldImage != updated.ImagePath {
		if err := ctrl.RoomUploads.Delete(oldImage); err != nil {
			utils.GetLogger().Warnf("admin update room %d: old image cleanup: %v", id, err)
		}
	}

	ctrl.Audit.Record(p.UserID, "AdminEditRoom",
		fmt.Sprintf("Admin updated room %d: %s", id, updated.Name), c.ClientIP())

	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (ctrl *AdminController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	p := middleware.GetPrincipal(c)

	room, err := ctrl.Rooms.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.GetLogger().Errorf("admin delete room %d: lookup: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}

	if err := ctrl.Rooms.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.GetLogger().Errorf("admin delete room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}

	// Row is gone; the artifact follows. A failed file delete only orphans
	// the file, it never resurrects the room.
	if room.ImagePath != "" {
		if err := ctrl.RoomUploads.Delete(room.ImagePath); err != nil {
			utils.GetLogger().Warnf("admin delete room %d: image cleanup: %v", id, err)
		}
	}

	ctrl.Audit.Record(p.UserID, "AdminDeleteRoom",
		fmt.Sprintf("Admin deleted room %d: %s", id, room.Name), c.ClientIP())

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}

// ---------------------------
// Audit trail
// ---------------------------

func (ctrl *AdminController) GetAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := ctrl.Audit.Recent(limit)
	if err != nil {
		utils.GetLogger().Errorf("admin list audit logs: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list audit logs")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, entries)
}
