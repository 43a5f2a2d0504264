package handlers

import (
	"net/http"
	"time"

	"inkwell/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthorRef is the denormalized author subset substituted for the user id
// on reads. Never includes the password hash.
type AuthorRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// CategoryRef is the denormalized category subset substituted on reads.
type CategoryRef struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PostResponse is a post with its references enriched. The join happens at
// read time; nothing denormalized is persisted.
type PostResponse struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Author    AuthorRef   `json:"author"`
	Category  CategoryRef `json:"category"`
	Image     *string     `json:"image"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Author    AuthorRef `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func postResponse(p models.Post) PostResponse {
	return PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  AuthorRef{ID: p.User.ID, Username: p.User.Username, Email: p.User.Email},
		Category: CategoryRef{
			ID:          p.Category.ID,
			Name:        p.Category.Name,
			Description: p.Category.Description,
		},
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func commentResponse(cm models.Comment) CommentResponse {
	return CommentResponse{
		ID:     cm.ID,
		PostID: cm.PostID,
		// Comments expose only the author's username, not the email
		Author:    AuthorRef{ID: cm.User.ID, Username: cm.User.Username},
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
	}
}

// fail writes the uniform {message} error body.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// serverError hides internal detail behind a constant message.
func serverError(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "Server error")
}
