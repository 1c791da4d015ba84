package services

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"booking-backend/models"
)

var roomTypePattern = regexp.MustCompile(`^[a-zA-Z ]+$`)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// ValidateRoom enforces the catalog field constraints. It returns a
// user-facing message; no partial state exists when it fails.
func ValidateRoom(room models.Room) error {
	name := strings.TrimSpace(room.Name)
	if len(name) < 2 || len(name) > 100 {
		return errors.New("room name must be between 2 and 100 characters")
	}
	if len(room.Description) > 500 {
		return errors.New("description must be at most 500 characters")
	}
	if room.PricePerNight <= 0 || room.PricePerNight > 100000 {
		return errors.New("price per night must be between 1 and 100000")
	}
	if room.MaxGuests < 1 || room.MaxGuests > 10 {
		return errors.New("max guests must be between 1 and 10")
	}
	if room.RoomType != "" {
		if len(room.RoomType) > 50 || !roomTypePattern.MatchString(room.RoomType) {
			return errors.New("room type can only contain letters and spaces")
		}
	}
	return nil
}

func (s *RoomService) Create(room *models.Room) error {
	return s.DB.Create(room).Error
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.First(&room, id).Error
	return room, err
}

func (s *RoomService) ListAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("name").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) ListAvailable() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Where("is_available = ?", true).Order("name").Find(&rooms).Error
	return rooms, err
}

// Update overwrites the catalog fields of room id, including ImagePath.
// The caller decides what ImagePath to keep; replacement ordering (store
// new file, update row, then drop the old file) lives in the handler.
func (s *RoomService) Update(id uint, room models.Room) (models.Room, error) {
	var existing models.Room
	if err := s.DB.First(&existing, id).Error; err != nil {
		return models.Room{}, err
	}

	result := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":            room.Name,
		"description":     room.Description,
		"price_per_night": room.PricePerNight,
		"max_guests":      room.MaxGuests,
		"room_type":       room.RoomType,
		"image_path":      room.ImagePath,
		"is_available":    room.IsAvailable,
		"amenities":       room.Amenities,
	})
	if result.Error != nil {
		return models.Room{}, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		s.DB.Model(&models.Room{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return models.Room{}, gorm.ErrRecordNotFound
		}
		return models.Room{}, ErrConflict
	}

	return s.GetByID(id)
}

func (s *RoomService) Delete(id uint) error {
	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
