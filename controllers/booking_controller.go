package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"booking-backend/middleware"
	"booking-backend/models"
	"booking-backend/services"
	"booking-backend/utils"
)

type createBookingPayload struct {
	RoomID      uint   `json:"room_id" binding:"required"`
	ServiceType string `json:"service_type"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
}

// updateBookingPayload deliberately has no user or room field: whatever the
// request body carries for those is never read. The stored row decides.
type updateBookingPayload struct {
	ServiceType string `json:"service_type"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
	Status      string `json:"status" binding:"required"`
}

type BookingController struct {
	Bookings *services.BookingService
	Rooms    *services.RoomService
	Audit    *services.AuditService
}

func NewBookingController(bookings *services.BookingService, rooms *services.RoomService, audit *services.AuditService) *BookingController {
	return &BookingController{Bookings: bookings, Rooms: rooms, Audit: audit}
}

func parseDate(s string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBookings lists the caller's own bookings; admins see everything.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	var (
		bookings []models.Booking
		err      error
	)
	if p.IsAdmin() {
		bookings, err = ctrl.Bookings.ListAll()
	} else {
		bookings, err = ctrl.Bookings.ListForUser(p.UserID)
	}
	if err != nil {
		utils.GetLogger().Errorf("list bookings: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctrl.Bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.GetLogger().Errorf("get booking %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}

	if !services.CanActOn(middleware.GetPrincipal(c), booking.UserID) {
		utils.JSONError(c, http.StatusForbidden, "you do not have access to this booking")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "room_id, check_in and check_out are required")
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

	room, err := ctrl.Rooms.GetByID(payload.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusBadRequest, "room not found")
			return
		}
		utils.GetLogger().Errorf("create booking: room lookup: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		return
	}
	if !room.IsAvailable {
		utils.JSONError(c, http.StatusBadRequest, "room is not available")
		return
	}

	booking := models.Booking{
		UserID:       p.UserID,
		RoomID:       room.ID,
		ServiceType:  payload.ServiceType,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       models.BookingStatusPending,
	}
	if err := ctrl.Bookings.Create(&booking); err != nil {
		utils.GetLogger().Errorf("create booking: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		return
	}

	ctrl.Audit.Record(p.UserID, "CreateBooking",
		fmt.Sprintf("Created booking for room '%s' from %s to %s", room.Name, payload.CheckIn, payload.CheckOut),
		c.ClientIP())

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	p := middleware.GetPrincipal(c)

	existing, err := ctrl.Bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.GetLogger().Errorf("update booking %d: lookup: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}

	if !services.CanActOn(p, existing.UserID) {
		utils.JSONError(c, http.StatusForbidden, "you do not have access to this booking")
		return
	}

	var payload updateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in, check_out and status are required")
		return
	}
	if !models.ValidBookingStatus(payload.Status) {
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

	updated, err := ctrl.Bookings.UpdateDetails(id, payload.ServiceType, checkIn, checkOut, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrConflict):
			utils.GetLogger().Errorf("update booking %d: conflict", id)
			utils.JSONError(c, http.StatusInternalServerError, "booking was modified concurrently")
		default:
			utils.GetLogger().Errorf("update booking %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update booking")
		}
		return
	}

	ctrl.Audit.Record(p.UserID, "EditBooking",
		fmt.Sprintf("Updated booking %d. Status: %s", id, updated.Status), c.ClientIP())

	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	p := middleware.GetPrincipal(c)

	booking, err := ctrl.Bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.GetLogger().Errorf("delete booking %d: lookup: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}

	// Ownership check before deletion: acting on a booking by id alone is
	// exactly the IDOR hole this closes.
	if !services.CanActOn(p, booking.UserID) {
		utils.JSONError(c, http.StatusForbidden, "you do not have access to this booking")
		return
	}

	if err := ctrl.Bookings.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.GetLogger().Errorf("delete booking %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking")
		return
	}

	ctrl.Audit.Record(p.UserID, "DeleteBooking", fmt.Sprintf("Deleted booking %d", id), c.ClientIP())

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking deleted"})
}
