package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-backend/middleware"
	"booking-backend/services"
	"booking-backend/utils"
)

// UploadController handles the generic attachment feature. It uses the
// attachment policy, which is stricter than the room-image one.
type UploadController struct {
	Uploads *services.UploadService
	Audit   *services.AuditService
}

func NewUploadController(uploads *services.UploadService, audit *services.AuditService) *UploadController {
	return &UploadController{Uploads: uploads, Audit: audit}
}

func (ctrl *UploadController) Upload(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	fh, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "no file uploaded")
		return
	}

	storedName, err := ctrl.Uploads.SaveMultipart(fh)
	if err != nil {
		if isUploadRejection(err) {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.GetLogger().Errorf("attachment upload: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to store file")
		return
	}

	ctrl.Audit.Record(p.UserID, "UploadFile", "Uploaded attachment "+storedName, c.ClientIP())

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"file_name": storedName})
}

// isUploadRejection separates policy rejections (user error, form re-render)
// from storage failures (server error).
func isUploadRejection(err error) bool {
	return errors.Is(err, services.ErrFileTooLarge) ||
		errors.Is(err, services.ErrExtensionNotAllowed) ||
		errors.Is(err, services.ErrContentTypeNotAllowed)
}
