package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"booking-backend/models"
)

func (env *testEnv) createBookingFor(t *testing.T, user models.User, room models.Room) models.Booking {
	t.Helper()

	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 2)
	booking := models.Booking{
		UserID:       user.ID,
		RoomID:       room.ID,
		ServiceType:  "Standard stay",
		CheckInDate:  &checkIn,
		CheckOutDate: &checkOut,
		Status:       models.BookingStatusPending,
	}
	assert.NoError(t, env.db.Create(&booking).Error)
	return booking
}

func TestCreateBookingAssignsCallerAsOwner(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "guest@example.com", models.RoleUser)
	room := env.createRoom(t, "Garden Room")

	w := env.doJSON(t, http.MethodPost, "/api/bookings", tokenFor(t, user), map[string]interface{}{
		"room_id":      room.ID,
		"service_type": "Two nights",
		"check_in":     "2026-10-01",
		"check_out":    "2026-10-03",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	assert.NoError(t, env.db.First(&booking).Error)
	assert.Equal(t, user.ID, booking.UserID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	entries := env.auditEntries(t, "CreateBooking")
	assert.Len(t, entries, 1)
	assert.Equal(t, user.ID, entries[0].UserID)
	assert.Contains(t, entries[0].Details, "Garden Room")
}

func TestCreateBookingRejectsUnavailableRoom(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "guest@example.com", models.RoleUser)
	room := models.Room{Name: "Closed Room", PricePerNight: 90, MaxGuests: 2, IsAvailable: false}
	assert.NoError(t, env.db.Create(&room).Error)

	w := env.doJSON(t, http.MethodPost, "/api/bookings", tokenFor(t, user), map[string]interface{}{
		"room_id":   room.ID,
		"check_in":  "2026-10-01",
		"check_out": "2026-10-03",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.auditEntries(t, "CreateBooking"))
}

func TestDeleteBookingByOwner(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleUser)
	room := env.createRoom(t, "Garden Room")
	booking := env.createBookingFor(t, owner, room)

	w := env.doJSON(t, http.MethodDelete, "/api/bookings/"+itoa(booking.ID), tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&count)
	assert.Zero(t, count, "booking no longer resolves by id")

	entries := env.auditEntries(t, "DeleteBooking")
	assert.Len(t, entries, 1, "exactly one audit entry for the deletion")
	assert.Equal(t, owner.ID, entries[0].UserID)
}

func TestDeleteBookingDeniedForNonOwner(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleUser)
	intruder := env.createUser(t, "intruder@example.com", models.RoleUser)
	room := env.createRoom(t, "Garden Room")
	booking := env.createBookingFor(t, owner, room)

	w := env.doJSON(t, http.MethodDelete, "/api/bookings/"+itoa(booking.ID), tokenFor(t, intruder), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// No mutation, no audit entry on a denied action.
	var count int64
	env.db.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, env.auditEntries(t, "DeleteBooking"))
}

func TestDeleteBookingAllowedForAdmin(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleUser)
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	room := env.createRoom(t, "Garden Room")
	booking := env.createBookingFor(t, owner, room)

	w := env.doJSON(t, http.MethodDelete, "/api/bookings/"+itoa(booking.ID), tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetBookingDeniedForNonOwner(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleUser)
	intruder := env.createUser(t, "intruder@example.com", models.RoleUser)
	room := env.createRoom(t, "Garden Room")
	booking := env.createBookingFor(t, owner, room)

	w := env.doJSON(t, http.MethodGet, "/api/bookings/"+itoa(booking.ID), tokenFor(t, intruder), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateBookingPreservesOwnerAndRoom(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleUser)
	room := env.createRoom(t, "Garden Room")
	otherRoom := env.createRoom(t, "Other Room")
	booking := env.createBookingFor(t, owner, room)

	// The request body tries to reassign both owner and room; neither
	// field is read by the handler.
	w := env.doJSON(t, http.MethodPut, "/api/bookings/"+itoa(booking.ID), tokenFor(t, owner), map[string]interface{}{
		"user_id":      9999,
		"room_id":      otherRoom.ID,
		"service_type": "Champagne",
		"check_in":     "2026-10-05",
		"check_out":    "2026-10-07",
		"status":       models.BookingStatusConfirmed,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Booking
	assert.NoError(t, env.db.First(&updated, booking.ID).Error)
	assert.Equal(t, owner.ID, updated.UserID, "owner survives a crafted request")
	assert.Equal(t, room.ID, updated.RoomID, "room survives a crafted request")
	assert.Equal(t, "Champagne", updated.ServiceType)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
}

func TestUpdateBookingRejectsUnknownStatus(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleUser)
	room := env.createRoom(t, "Garden Room")
	booking := env.createBookingFor(t, owner, room)

	w := env.doJSON(t, http.MethodPut, "/api/bookings/"+itoa(booking.ID), tokenFor(t, owner), map[string]interface{}{
		"check_in":  "2026-10-05",
		"check_out": "2026-10-07",
		"status":    "CheckedOut",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingListScopedByRole(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleUser)
	other := env.createUser(t, "other@example.com", models.RoleUser)
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	room := env.createRoom(t, "Garden Room")
	env.createBookingFor(t, owner, room)
	env.createBookingFor(t, other, room)

	w := env.doJSON(t, http.MethodGet, "/api/bookings", tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, countBookingsInResponse(t, w.Body.Bytes()))

	w = env.doJSON(t, http.MethodGet, "/api/bookings", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, countBookingsInResponse(t, w.Body.Bytes()))
}

func TestBookingEndpointsRequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(t, http.MethodDelete, "/api/bookings/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
