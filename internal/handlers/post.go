package handlers

import (
	"fmt"
	"net/http"
	"time"

	"inkwell/internal/assets"
	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/query"
	"inkwell/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const detailCacheTTL = 5 * time.Minute

type PostHandler struct {
	db    *gorm.DB
	store assets.Store
	cache *cache.Cache
}

func NewPostHandler(db *gorm.DB, store assets.Store, cache *cache.Cache) *PostHandler {
	return &PostHandler{db: db, store: store, cache: cache}
}

func detailCacheKey(id string) string {
	return fmt.Sprintf("post:detail:%s", id)
}

// List returns a page of posts filtered by free-text search and category.
func (h *PostHandler) List(c *gin.Context) {
	p := query.Parse(c.Query("page"), c.Query("limit"), c.Query("search"), c.Query("category"))

	// Count over the same predicate as the page so totals reflect the full
	// matching set, not the current page.
	var total int64
	if err := p.Filter(h.db.Model(&models.Post{})).Count(&total).Error; err != nil {
		serverError(c)
		return
	}

	var posts []models.Post
	err := p.Paginate(p.Filter(h.db.Model(&models.Post{}))).
		Preload("User").Preload("Category").
		Find(&posts).Error
	if err != nil {
		serverError(c)
		return
	}

	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = postResponse(post)
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       responses,
		"currentPage": p.Page,
		"totalPages":  p.TotalPages(total),
		"totalPosts":  total,
	})
}

func (h *PostHandler) Get(c *gin.Context) {
	id := c.Param("id")

	if cached := h.cache.Get(detailCacheKey(id)); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var post models.Post
	err := h.db.Preload("User").Preload("Category").First(&post, "id = ?", id).Error
	if err != nil {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}

	resp := postResponse(post)
	h.cache.Set(detailCacheKey(id), resp, detailCacheTTL)
	c.JSON(http.StatusOK, resp)
}

// Create persists a new post for the authenticated user. The author always
// comes from the verified identity; a client-supplied author field is never
// read. If an image was uploaded, it is removed again on every failing exit
// path so a rejected request leaves no orphan file behind.
func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var imagePath *string
	if file, err := c.FormFile("image"); err == nil {
		saved, err := h.store.Save(file)
		if err != nil {
			serverError(c)
			return
		}
		imagePath = &saved
	}

	in := validation.PostInput{
		Title:    c.PostForm("title"),
		Content:  c.PostForm("content"),
		Category: c.PostForm("category"),
	}
	if err := in.Validate(); err != nil {
		h.discard(imagePath)
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", in.Category).Error; err != nil {
		h.discard(imagePath)
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	post := models.Post{
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: category.ID,
		UserID:     user.ID,
		Image:      imagePath,
	}
	if err := h.db.Create(&post).Error; err != nil {
		h.discard(imagePath)
		serverError(c)
		return
	}

	post.User = *user
	post.Category = category
	c.JSON(http.StatusCreated, postResponse(post))
}

// Update applies only the fields present in the request. A new image
// replaces the old one; the old file is deleted only after the record has
// been persisted with the new path.
func (h *PostHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	var post models.Post
	if err := h.db.First(&post, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}

	// Ownership comes before any side effect, including writing the new
	// upload to disk.
	if post.UserID != user.ID {
		fail(c, http.StatusForbidden, "Not authorized to update this post")
		return
	}

	in := validation.PostUpdateInput{
		Title:    formField(c, "title"),
		Content:  formField(c, "content"),
		Category: formField(c, "category"),
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if in.Category != nil {
		var category models.Category
		if err := h.db.First(&category, "id = ?", *in.Category).Error; err != nil {
			fail(c, http.StatusNotFound, "Category not found")
			return
		}
		post.CategoryID = category.ID
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}

	oldImage := post.Image
	var newImage *string
	if file, err := c.FormFile("image"); err == nil {
		saved, err := h.store.Save(file)
		if err != nil {
			serverError(c)
			return
		}
		newImage = &saved
		post.Image = newImage
	}

	if err := h.db.Save(&post).Error; err != nil {
		h.discard(newImage)
		serverError(c)
		return
	}

	// The record now references the new file; the previous one is dead.
	if newImage != nil && oldImage != nil {
		h.discard(oldImage)
	}

	h.cache.Delete(detailCacheKey(id))

	if err := h.db.Preload("User").Preload("Category").First(&post, post.ID).Error; err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, postResponse(post))
}

// Delete removes the post record, then its image file. Comments under the
// post are left in place, orphaned.
func (h *PostHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	var post models.Post
	if err := h.db.First(&post, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}

	if post.UserID != user.ID {
		fail(c, http.StatusForbidden, "Not authorized to delete this post")
		return
	}

	if err := h.db.Delete(&post).Error; err != nil {
		serverError(c)
		return
	}
	h.discard(post.Image)
	h.cache.Delete(detailCacheKey(id))

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// discard is the compensation path for a file whose record never made it,
// or whose record moved on. A missing file is fine; the store is the source
// of truth, the filesystem only caches bytes.
func (h *PostHandler) discard(path *string) {
	if path == nil {
		return
	}
	_ = h.store.Remove(*path)
}

// formField distinguishes an omitted multipart field from an empty one.
func formField(c *gin.Context, name string) *string {
	if value, ok := c.GetPostForm(name); ok {
		return &value
	}
	return nil
}
