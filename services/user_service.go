package services

import (
	"gorm.io/gorm"

	"booking-backend/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) Create(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *UserService) GetByID(id uint) (models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	return user, err
}

func (s *UserService) GetByEmail(email string) (models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	return user, err
}

func (s *UserService) ListAll() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("email").Find(&users).Error
	return users, err
}

// DeleteWithBookings removes the user and their bookings in one
// transaction, matching the cascade the admin user-management flow needs.
func (s *UserService) DeleteWithBookings(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
