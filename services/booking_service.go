package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"booking-backend/models"
)

// ErrConflict reports that a row changed or vanished between read and write.
// It is distinct from gorm.ErrRecordNotFound so handlers can map the two to
// different responses.
var ErrConflict = errors.New("record was modified concurrently")

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

func (s *BookingService) Create(booking *models.Booking) error {
	return s.DB.Create(booking).Error
}

func (s *BookingService) GetByID(id uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Room").First(&booking, id).Error
	return booking, err
}

// ListForUser returns the bookings owned by one user; ListAll is the admin
// view across all users.
func (s *BookingService) ListForUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) ListAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").Preload("User").Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

// UpdateDetails overwrites the mutable fields of booking id. UserID and
// RoomID stay whatever the stored row says; callers cannot reach them here
// at all, which is what keeps ownership transfer off the table.
func (s *BookingService) UpdateDetails(id uint, serviceType string, checkIn, checkOut *time.Time, status string) (models.Booking, error) {
	var existing models.Booking
	if err := s.DB.First(&existing, id).Error; err != nil {
		return models.Booking{}, err
	}

	result := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"service_type":   serviceType,
		"check_in_date":  checkIn,
		"check_out_date": checkOut,
		"status":         status,
	})
	if result.Error != nil {
		return models.Booking{}, result.Error
	}
	if result.RowsAffected == 0 {
		// Row changed under us: gone means not found, still present means
		// a genuine conflict that the caller surfaces as fatal.
		var count int64
		s.DB.Model(&models.Booking{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return models.Booking{}, gorm.ErrRecordNotFound
		}
		return models.Booking{}, ErrConflict
	}

	return s.GetByID(id)
}

// UpdateStatus changes only the status column.
func (s *BookingService) UpdateStatus(id uint, status string) (models.Booking, error) {
	var existing models.Booking
	if err := s.DB.First(&existing, id).Error; err != nil {
		return models.Booking{}, err
	}

	result := s.DB.Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return models.Booking{}, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		s.DB.Model(&models.Booking{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return models.Booking{}, gorm.ErrRecordNotFound
		}
		return models.Booking{}, ErrConflict
	}

	existing.Status = status
	return existing, nil
}

func (s *BookingService) Delete(id uint) error {
	result := s.DB.Delete(&models.Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
