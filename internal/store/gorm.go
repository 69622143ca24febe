package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spicelab/recipebox/internal/models"
)

// GormStore is the relational implementation of Store. It works against any
// dialect GORM supports; the application uses SQLite and Postgres. The
// favorites uniqueness invariant is enforced by the composite unique index
// plus an ON CONFLICT DO NOTHING insert, never a check-then-act sequence.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the three tables and their constraints.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Favorite{},
	)
}

func (s *GormStore) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (s *GormStore) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &recipe, nil
}

func (s *GormStore) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if strings.TrimSpace(recipe.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

func (s *GormStore) UpdateRecipe(ctx context.Context, id uuid.UUID, patch RecipePatch) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := applyPatch(&recipe, patch); err != nil {
			return err
		}
		return tx.Save(&recipe).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return &recipe, nil
}

func applyPatch(recipe *models.Recipe, patch RecipePatch) error {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return fmt.Errorf("title cannot be empty: %w", ErrValidation)
		}
		recipe.Title = *patch.Title
	}
	if patch.Category != nil {
		recipe.Category = *patch.Category
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.PrepTime != nil {
		recipe.PrepTime = *patch.PrepTime
	}
	if patch.Difficulty != nil {
		recipe.Difficulty = *patch.Difficulty
	}
	if patch.Image != nil {
		recipe.Image = *patch.Image
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = models.StringArray(*patch.Ingredients)
	}
	if patch.Steps != nil {
		recipe.Steps = models.StringArray(*patch.Steps)
	}
	return nil
}

func (s *GormStore) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		// Cascade even when the dialect does not enforce the FK.
		return tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

func (s *GormStore) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	// The join naturally excludes favorites whose recipe has been deleted.
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return recipes, nil
}

func (s *GormStore) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) ([]models.Recipe, error) {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).
		Create(&fav).Error
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return s.ListFavorites(ctx, userID)
}

func (s *GormStore) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) ([]models.Recipe, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	return s.ListFavorites(ctx, userID)
}

func (s *GormStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
