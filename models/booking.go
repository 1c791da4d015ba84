package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// UserID and RoomID are fixed at creation; edit paths re-read them from
	// the stored row and overwrite whatever the request body carried.
	UserID uint `gorm:"index;column:user_id" json:"user_id"`
	RoomID uint `gorm:"index;column:room_id" json:"room_id"`

	ServiceType  string     `gorm:"column:service_type;size:100" json:"service_type"`
	CheckInDate  *time.Time `gorm:"column:check_in_date" json:"check_in_date"`
	CheckOutDate *time.Time `gorm:"column:check_out_date" json:"check_out_date"`
	Status       string     `gorm:"column:status;size:50;default:Pending" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// ValidBookingStatus reports whether s is one of the three allowed states.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}
