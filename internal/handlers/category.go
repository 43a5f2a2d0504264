package handlers

import (
	"errors"
	"net/http"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler manages the flat category namespace. Categories have no
// owner: any authenticated user may update or delete any of them. The
// asymmetry with posts and comments is intentional.
type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("name ASC").Find(&categories).Error; err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in validation.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// Check-then-create is not atomic; two concurrent creates with the same
	// name can both pass. Accepted race, the unique index catches the rest.
	var existing models.Category
	err := h.db.Where("name = ?", in.Name).First(&existing).Error
	if err == nil {
		fail(c, http.StatusBadRequest, "Category already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c)
		return
	}

	category := models.Category{Name: in.Name, Description: in.Description}
	if err := h.db.Create(&category).Error; err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	var in validation.CategoryUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}

	if err := h.db.Save(&category).Error; err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	if err := h.db.Delete(&category).Error; err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
