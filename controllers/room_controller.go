package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"booking-backend/services"
	"booking-backend/utils"
)

// RoomController serves the public catalog; management lives in the admin
// controller.
type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Rooms.ListAvailable()
	if err != nil {
		utils.GetLogger().Errorf("list rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := ctrl.Rooms.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.GetLogger().Errorf("get room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, room)
}
