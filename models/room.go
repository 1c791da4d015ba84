package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	Name          string  `json:"name" gorm:"size:100"`
	Description   string  `json:"description" gorm:"size:500"`
	PricePerNight float64 `json:"price_per_night" gorm:"column:price_per_night"`
	MaxGuests     int     `json:"max_guests" gorm:"column:max_guests"`
	RoomType      string  `json:"room_type" gorm:"column:room_type;size:50"`

	// ImagePath holds the generated stored name only, never a client-supplied
	// filename. Served through the file read endpoint, not a static route.
	ImagePath   string `json:"image_path,omitempty" gorm:"column:image_path;size:100"`
	IsAvailable bool   `json:"is_available" gorm:"column:is_available;default:true"`

	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`
}
