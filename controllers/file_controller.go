package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-backend/services"
	"booking-backend/utils"
)

// FileController is the only read path for stored uploads. The storage root
// is never registered as a static route, so every read goes through the
// basename sanitization in ResolvePath.
type FileController struct {
	Uploads *services.UploadService
}

func NewFileController(uploads *services.UploadService) *FileController {
	return &FileController{Uploads: uploads}
}

func (ctrl *FileController) GetFile(c *gin.Context) {
	requested := c.Param("name")

	full, ok := ctrl.Uploads.ResolvePath(requested)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "file not found")
		return
	}

	c.Header("Content-Type", services.ContentTypeForFile(full))
	c.File(full)
}
