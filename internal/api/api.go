// Package api contains the Gin HTTP handlers. Every failure response uses
// the `{success: false, message}` envelope; internal error detail stays in
// the logs.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/spicelab/recipebox/internal/middleware"
	"github.com/spicelab/recipebox/internal/service"
	"github.com/spicelab/recipebox/internal/store"
)

// SetupAPI wires all handlers under /api. Recipe CRUD, signup, login, and
// verify-token are public; the favorites routes require a bearer token.
func SetupAPI(router *gin.Engine, st store.Store, authService *service.AuthService) {
	root := router.Group("/api")
	{
		authHandler := NewAuthHandler(authService)
		recipeHandler := NewRecipeHandler(st)
		favoriteHandler := NewFavoriteHandler(st)

		authHandler.RegisterRoutes(root)
		recipeHandler.RegisterRoutes(root)
		favoriteHandler.RegisterRoutes(root, middleware.AuthMiddleware(authService))
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
