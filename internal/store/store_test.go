package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicelab/recipebox/internal/models"
	"github.com/spicelab/recipebox/internal/store"
	"github.com/spicelab/recipebox/internal/testhelpers"
)

func TestSQLiteStoreContract(t *testing.T) {
	testStoreContract(t, func(t *testing.T) store.Store {
		return store.NewGormStore(testhelpers.SetupSQLite(t))
	})
}

// testStoreContract is the behavioral contract every Store implementation
// must satisfy. It runs against SQLite here and against Postgres and Mongo
// in parity_test.go.
func testStoreContract(t *testing.T, open func(t *testing.T) store.Store) {
	st := open(t)
	ctx := context.Background()

	t.Run("empty catalog lists as empty slice", func(t *testing.T) {
		recipes, err := st.ListRecipes(ctx, store.RecipeFilter{})
		require.NoError(t, err)
		assert.NotNil(t, recipes)
		assert.Empty(t, recipes)
	})

	t.Run("create applies defaults and round-trips", func(t *testing.T) {
		created, err := st.CreateRecipe(ctx, &models.Recipe{Title: "Plain Toast"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, models.DefaultCategory, created.Category)
		assert.NotNil(t, created.Ingredients)
		assert.NotNil(t, created.Steps)

		got, err := st.GetRecipe(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Plain Toast", got.Title)
		assert.Equal(t, models.DefaultCategory, got.Category)
		assert.Empty(t, got.Ingredients)
		assert.Empty(t, got.Steps)
	})

	t.Run("create preserves provided fields", func(t *testing.T) {
		created, err := st.CreateRecipe(ctx, &models.Recipe{
			Title:       "Watalappan",
			Category:    "Dessert",
			Description: "Jaggery custard",
			PrepTime:    "45 min",
			Difficulty:  "Medium",
			Ingredients: models.StringArray{"coconut milk", "jaggery", "eggs"},
			Steps:       models.StringArray{"whisk", "steam"},
		})
		require.NoError(t, err)

		got, err := st.GetRecipe(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dessert", got.Category)
		assert.Equal(t, models.StringArray{"coconut milk", "jaggery", "eggs"}, got.Ingredients)
		assert.Equal(t, models.StringArray{"whisk", "steam"}, got.Steps)
	})

	t.Run("create rejects blank title", func(t *testing.T) {
		_, err := st.CreateRecipe(ctx, &models.Recipe{Title: "   "})
		assert.ErrorIs(t, err, store.ErrValidation)
	})

	t.Run("get unknown recipe", func(t *testing.T) {
		_, err := st.GetRecipe(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list orders newest first and filters by category", func(t *testing.T) {
		titles := []string{"First Curry", "Second Curry", "Third Curry"}
		for _, title := range titles {
			_, err := st.CreateRecipe(ctx, &models.Recipe{Title: title, Category: "Curry"})
			require.NoError(t, err)
			time.Sleep(10 * time.Millisecond)
		}

		recipes, err := st.ListRecipes(ctx, store.RecipeFilter{Category: "Curry"})
		require.NoError(t, err)
		require.Len(t, recipes, 3)
		assert.Equal(t, "Third Curry", recipes[0].Title)
		assert.Equal(t, "Second Curry", recipes[1].Title)
		assert.Equal(t, "First Curry", recipes[2].Title)

		none, err := st.ListRecipes(ctx, store.RecipeFilter{Category: "NoSuchCategory"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		created, err := st.CreateRecipe(ctx, &models.Recipe{
			Title:       "Kottu",
			Category:    "Street Food",
			Description: "Chopped roti stir-fry",
		})
		require.NoError(t, err)

		newTitle := "Chicken Kottu"
		updated, err := st.UpdateRecipe(ctx, created.ID, store.RecipePatch{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Chicken Kottu", updated.Title)
		assert.Equal(t, "Street Food", updated.Category)
		assert.Equal(t, "Chopped roti stir-fry", updated.Description)

		steps := []string{"chop", "fry"}
		updated, err = st.UpdateRecipe(ctx, created.ID, store.RecipePatch{Steps: &steps})
		require.NoError(t, err)
		assert.Equal(t, "Chicken Kottu", updated.Title)
		assert.Equal(t, models.StringArray{"chop", "fry"}, updated.Steps)
	})

	t.Run("update rejects blank title", func(t *testing.T) {
		created, err := st.CreateRecipe(ctx, &models.Recipe{Title: "Named"})
		require.NoError(t, err)

		blank := " "
		_, err = st.UpdateRecipe(ctx, created.ID, store.RecipePatch{Title: &blank})
		assert.ErrorIs(t, err, store.ErrValidation)

		got, err := st.GetRecipe(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Named", got.Title)
	})

	t.Run("update unknown recipe", func(t *testing.T) {
		title := "Anything"
		_, err := st.UpdateRecipe(ctx, uuid.New(), store.RecipePatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes the recipe", func(t *testing.T) {
		created, err := st.CreateRecipe(ctx, &models.Recipe{Title: "Ephemeral"})
		require.NoError(t, err)

		require.NoError(t, st.DeleteRecipe(ctx, created.ID))
		_, err = st.GetRecipe(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.ErrorIs(t, st.DeleteRecipe(ctx, created.ID), store.ErrNotFound)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := st.CreateUser(ctx, &models.User{
			Name: "Amara", Email: "amara@example.com", PasswordHash: "x",
		})
		require.NoError(t, err)

		_, err = st.CreateUser(ctx, &models.User{
			Name: "Imposter", Email: "amara@example.com", PasswordHash: "y",
		})
		assert.ErrorIs(t, err, store.ErrDuplicateEmail)
	})

	t.Run("user lookups", func(t *testing.T) {
		created, err := st.CreateUser(ctx, &models.User{
			Name: "Nimal", Email: "nimal@example.com", PasswordHash: "hash",
		})
		require.NoError(t, err)

		byEmail, err := st.GetUserByEmail(ctx, "nimal@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.PasswordHash)

		byID, err := st.GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "nimal@example.com", byID.Email)

		_, err = st.GetUserByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.GetUserByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("favorites lifecycle", func(t *testing.T) {
		user := createTestUser(t, st, "fav-lifecycle@example.com")
		first := createTestRecipe(t, st, "Pol Sambol")
		second := createTestRecipe(t, st, "Hoppers")

		list, err := st.ListFavorites(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, list)

		list, err = st.AddFavorite(ctx, user.ID, first.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, first.ID, list[0].ID)

		time.Sleep(10 * time.Millisecond)
		list, err = st.AddFavorite(ctx, user.ID, second.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID, "most recently favorited comes first")
		assert.Equal(t, first.ID, list[1].ID)

		// Re-adding is a no-op, not an error, and does not duplicate.
		list, err = st.AddFavorite(ctx, user.ID, first.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		list, err = st.RemoveFavorite(ctx, user.ID, first.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, second.ID, list[0].ID)

		// Removing an absent pair succeeds while other favorites remain.
		list, err = st.RemoveFavorite(ctx, user.ID, first.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("favorite unknown recipe", func(t *testing.T) {
		user := createTestUser(t, st, "fav-unknown@example.com")
		_, err := st.AddFavorite(ctx, user.ID, uuid.New())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("remove with no favorites at all", func(t *testing.T) {
		user := createTestUser(t, st, "fav-none@example.com")
		recipe := createTestRecipe(t, st, "Untouched")

		_, err := st.RemoveFavorite(ctx, user.ID, recipe.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleting a recipe removes it from favorites", func(t *testing.T) {
		user := createTestUser(t, st, "fav-cascade@example.com")
		keep := createTestRecipe(t, st, "Keeper")
		doomed := createTestRecipe(t, st, "Doomed")

		_, err := st.AddFavorite(ctx, user.ID, keep.ID)
		require.NoError(t, err)
		_, err = st.AddFavorite(ctx, user.ID, doomed.ID)
		require.NoError(t, err)

		require.NoError(t, st.DeleteRecipe(ctx, doomed.ID))

		list, err := st.ListFavorites(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, keep.ID, list[0].ID)
	})

	t.Run("concurrent adds keep the pair unique", func(t *testing.T) {
		user := createTestUser(t, st, "fav-race@example.com")
		recipe := createTestRecipe(t, st, "Contested")

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := st.AddFavorite(ctx, user.ID, recipe.ID)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		list, err := st.ListFavorites(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

var testUserSeq int

func createTestUser(t *testing.T, st store.Store, email string) *models.User {
	t.Helper()
	testUserSeq++
	user, err := st.CreateUser(context.Background(), &models.User{
		Name:         fmt.Sprintf("Test User %d", testUserSeq),
		Email:        email,
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplaceholde",
	})
	require.NoError(t, err)
	return user
}

func createTestRecipe(t *testing.T, st store.Store, title string) *models.Recipe {
	t.Helper()
	recipe, err := st.CreateRecipe(context.Background(), &models.Recipe{Title: title})
	require.NoError(t, err)
	return recipe
}
