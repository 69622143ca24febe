package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spicelab/recipebox/internal/models"
	"github.com/spicelab/recipebox/internal/store"
)

type RecipeHandler struct {
	store store.RecipeStore
}

func NewRecipeHandler(st store.RecipeStore) *RecipeHandler {
	return &RecipeHandler{store: st}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// createRecipeRequest accepts `name` as a legacy alias for `title`; the
// stored field is always title.
type createRecipeRequest struct {
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	PrepTime    string   `json:"prepTime"`
	Difficulty  string   `json:"difficulty"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

type updateRecipeRequest struct {
	Title       *string   `json:"title"`
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	PrepTime    *string   `json:"prepTime"`
	Difficulty  *string   `json:"difficulty"`
	Image       *string   `json:"image"`
	Ingredients *[]string `json:"ingredients"`
	Steps       *[]string `json:"steps"`
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := store.RecipeFilter{Category: c.Query("category")}

	recipes, err := h.store.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		slog.Error("list recipes", "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	recipe, err := h.store.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Recipe not found")
			return
		}
		slog.Error("get recipe", "id", id, "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := req.Title
	if title == "" {
		title = req.Name
	}

	recipe := &models.Recipe{
		Title:       title,
		Category:    req.Category,
		Description: req.Description,
		PrepTime:    req.PrepTime,
		Difficulty:  req.Difficulty,
		Image:       req.Image,
		Ingredients: models.StringArray(req.Ingredients),
		Steps:       models.StringArray(req.Steps),
	}

	created, err := h.store.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			respondError(c, http.StatusBadRequest, "Title is required")
			return
		}
		slog.Error("create recipe", "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := req.Title
	if title == nil {
		title = req.Name
	}

	patch := store.RecipePatch{
		Title:       title,
		Category:    req.Category,
		Description: req.Description,
		PrepTime:    req.PrepTime,
		Difficulty:  req.Difficulty,
		Image:       req.Image,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	}

	updated, err := h.store.UpdateRecipe(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(c, http.StatusNotFound, "Recipe not found")
		case errors.Is(err, store.ErrValidation):
			respondError(c, http.StatusBadRequest, "Title cannot be empty")
		default:
			slog.Error("update recipe", "id", id, "err", err)
			respondError(c, http.StatusInternalServerError, "Failed to update recipe")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	if err := h.store.DeleteRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Recipe not found")
			return
		}
		slog.Error("delete recipe", "id", id, "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Recipe deleted"})
}
