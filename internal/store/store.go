// Package store defines the data-access contract shared by the relational
// (GORM) and document (MongoDB) persistence backends. Both implementations
// must be behaviorally identical; the contract test suite runs against each.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/spicelab/recipebox/internal/models"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates missing or invalid input fields.
	ErrValidation = errors.New("invalid input")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// RecipeFilter narrows ListRecipes. Zero value means no filtering.
type RecipeFilter struct {
	Category string
}

// RecipePatch carries a partial recipe update. Nil fields are left unchanged.
type RecipePatch struct {
	Title       *string
	Category    *string
	Description *string
	PrepTime    *string
	Difficulty  *string
	Image       *string
	Ingredients *[]string
	Steps       *[]string
}

type RecipeStore interface {
	// ListRecipes returns recipes ordered by creation time, newest first.
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	// CreateRecipe persists a recipe with a fresh id and timestamp. Returns
	// ErrValidation if the title is empty.
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	// UpdateRecipe merges the patch onto the stored record.
	UpdateRecipe(ctx context.Context, id uuid.UUID, patch RecipePatch) (*models.Recipe, error)
	// DeleteRecipe removes the recipe and any favorites referencing it.
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	// CreateUser persists a user. Returns ErrDuplicateEmail if the email is
	// already registered.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type FavoriteStore interface {
	// ListFavorites returns the recipes the user has favorited, most recently
	// favorited first. Dangling references are silently excluded.
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	// AddFavorite records the (user, recipe) pair and returns the updated
	// favorites list. Adding an existing pair is a no-op success. Returns
	// ErrNotFound if the recipe does not exist.
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) ([]models.Recipe, error)
	// RemoveFavorite deletes the pair if present and returns the updated
	// list. Removing an absent pair is a no-op success, except when the user
	// has no favorites at all, which returns ErrNotFound.
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) ([]models.Recipe, error)
}

// Store is the full persistence contract the HTTP layer depends on.
type Store interface {
	RecipeStore
	UserStore
	FavoriteStore

	Close(ctx context.Context) error
}
