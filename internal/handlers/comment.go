package handlers

import (
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// ListByPost returns all comments under a post, newest first.
func (h *CommentHandler) ListByPost(c *gin.Context) {
	var comments []models.Comment
	err := h.db.Preload("User").
		Where("post_id = ?", c.Param("postId")).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		serverError(c)
		return
	}

	responses := make([]CommentResponse, len(comments))
	for i, cm := range comments {
		responses[i] = commentResponse(cm)
	}
	c.JSON(http.StatusOK, responses)
}

// Create persists a comment after checking its post still resolves. The
// reference is not re-validated later; a post deleted afterwards leaves the
// comment orphaned.
func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var in validation.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var post models.Post
	if err := h.db.First(&post, "id = ?", in.Post).Error; err != nil {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: in.Content,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		serverError(c)
		return
	}

	comment.User = *user
	c.JSON(http.StatusCreated, commentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var comment models.Comment
	if err := h.db.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Comment not found")
		return
	}

	if comment.UserID != user.ID {
		fail(c, http.StatusForbidden, "Not authorized to update this comment")
		return
	}

	var in validation.CommentUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if in.Content != nil {
		comment.Content = *in.Content
	}
	if err := h.db.Save(&comment).Error; err != nil {
		serverError(c)
		return
	}

	if err := h.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, commentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var comment models.Comment
	if err := h.db.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Comment not found")
		return
	}

	if comment.UserID != user.ID {
		fail(c, http.StatusForbidden, "Not authorized to delete this comment")
		return
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
