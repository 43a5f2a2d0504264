package handlers

import (
	"errors"
	"net/http"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"
	"inkwell/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db     *gorm.DB
	secret string
}

func NewAuthHandler(db *gorm.DB, secret string) *AuthHandler {
	return &AuthHandler{db: db, secret: secret}
}

// Register creates a user and issues a bearer token.
func (h *AuthHandler) Register(c *gin.Context) {
	var in validation.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.User
	err := h.db.Where("email = ? OR username = ?", in.Email, in.Username).First(&existing).Error
	if err == nil {
		fail(c, http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c)
		return
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		serverError(c)
		return
	}

	user := models.User{Username: in.Username, Email: in.Email, Password: hash}
	if err := h.db.Create(&user).Error; err != nil {
		serverError(c)
		return
	}

	token, err := auth.GenerateToken(user.ID, h.secret)
	if err != nil {
		serverError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}

// Login authenticates by email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var in validation.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !utils.CheckPasswordHash(in.Password, user.Password) {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.secret)
	if err != nil {
		serverError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
