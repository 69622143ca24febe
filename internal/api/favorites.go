package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spicelab/recipebox/internal/middleware"
	"github.com/spicelab/recipebox/internal/store"
)

type FavoriteHandler struct {
	store store.FavoriteStore
}

func NewFavoriteHandler(st store.FavoriteStore) *FavoriteHandler {
	return &FavoriteHandler{store: st}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	me := router.Group("/me/favorites")
	me.Use(auth)
	{
		me.GET("", h.ListFavorites)
		me.POST("/:id", h.AddFavorite)
		me.DELETE("/:id", h.RemoveFavorite)
	}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token")
		return
	}

	favorites, err := h.store.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("list favorites", "user_id", user.ID, "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "favorites": favorites})
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	favorites, err := h.store.AddFavorite(c.Request.Context(), user.ID, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Recipe not found")
			return
		}
		slog.Error("add favorite", "user_id", user.ID, "recipe_id", recipeID, "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to add favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to favorites", "favorites": favorites})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	favorites, err := h.store.RemoveFavorite(c.Request.Context(), user.ID, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "No favorites found")
			return
		}
		slog.Error("remove favorite", "user_id", user.ID, "recipe_id", recipeID, "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from favorites", "favorites": favorites})
}
