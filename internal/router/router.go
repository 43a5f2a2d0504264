package router

import (
	"inkwell/internal/assets"
	"inkwell/internal/cache"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires every handler. Listing and single reads are public;
// every mutating route sits behind the bearer-token gate.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store assets.Store, c *cache.Cache, secret string) {
	authHandler := handlers.NewAuthHandler(db, secret)
	postHandler := handlers.NewPostHandler(db, store, c)
	categoryHandler := handlers.NewCategoryHandler(db)
	commentHandler := handlers.NewCommentHandler(db)

	requireAuth := middleware.RequireAuth(db, secret)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", postHandler.List)
		posts.GET("/:id", postHandler.Get)
		posts.POST("", requireAuth, postHandler.Create)
		posts.PUT("/:id", requireAuth, postHandler.Update)
		posts.DELETE("/:id", requireAuth, postHandler.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/:id", categoryHandler.Get)
		categories.POST("", requireAuth, categoryHandler.Create)
		categories.PUT("/:id", requireAuth, categoryHandler.Update)
		categories.DELETE("/:id", requireAuth, categoryHandler.Delete)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/post/:postId", commentHandler.ListByPost)
		comments.POST("", requireAuth, commentHandler.Create)
		comments.PUT("/:id", requireAuth, commentHandler.Update)
		comments.DELETE("/:id", requireAuth, commentHandler.Delete)
	}
}
