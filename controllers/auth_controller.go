package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"booking-backend/middleware"
	"booking-backend/models"
	"booking-backend/services"
	"booking-backend/utils"
)

type registerPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Users *services.UserService
	Audit *services.AuditService
}

func NewAuthController(users *services.UserService, audit *services.AuditService) *AuthController {
	return &AuthController{Users: users, Audit: audit}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{Email: email, Password: string(hash), Role: models.RoleUser}
	if err := ctrl.Users.Create(&user); err != nil {
		if isDuplicateEntryError(err) {
			utils.JSONError(c, http.StatusConflict, "an account with this email already exists")
			return
		}
		utils.GetLogger().Errorf("register: create user failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	ctrl.Audit.Record(user.ID, "Register", "User registered: "+user.Email, c.ClientIP())

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"user_id": user.ID, "email": user.Email})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	user, err := ctrl.Users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.GetLogger().Errorf("login: lookup failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.GetLogger().Errorf("login: token generation failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	ctrl.Audit.Record(user.ID, "Login", "User logged in: "+user.Email, c.ClientIP())

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "email": user.Email, "role": user.Role},
	})
}

// Logout records the sign-out. The principal is captured before anything
// else so the audit row still references the caller even though the token
// is considered dead from here on.
func (ctrl *AuthController) Logout(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if p.UserID != 0 {
		ctrl.Audit.Record(p.UserID, "Logout", "User logged out", c.ClientIP())
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "logged out"})
}
