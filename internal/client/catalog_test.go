package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicelab/recipebox/internal/models"
)

func TestRecipesFallsBackToSamplesWhenServerUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1") // nothing listens there

	recipes := c.Recipes(context.Background())
	require.NotEmpty(t, recipes)
	assert.Equal(t, SampleRecipes(), recipes)
}

func TestRecipesFallsBackToSamplesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	recipes := New(srv.URL).Recipes(context.Background())
	assert.Equal(t, SampleRecipes(), recipes)
}

func TestSampleRecipesReturnsACopy(t *testing.T) {
	first := SampleRecipes()
	first[0].Title = "Mutated"

	assert.NotEqual(t, "Mutated", SampleRecipes()[0].Title)
}

func TestMergeRecipesFirstSeenWins(t *testing.T) {
	shared := uuid.New()
	primary := []models.Recipe{
		{ID: shared, Title: "Server Copy"},
		{ID: uuid.New(), Title: "Server Only"},
	}
	fallback := []models.Recipe{
		{ID: shared, Title: "Sample Copy"},
		{ID: uuid.New(), Title: "Sample Only"},
	}

	merged := MergeRecipes(primary, fallback)
	require.Len(t, merged, 3)
	assert.Equal(t, "Server Copy", merged[0].Title, "the primary copy of a shared id wins")
	assert.Equal(t, "Server Only", merged[1].Title)
	assert.Equal(t, "Sample Only", merged[2].Title)
}

func TestMergeRecipesEmptyPrimary(t *testing.T) {
	merged := MergeRecipes(nil, SampleRecipes())
	assert.Equal(t, SampleRecipes(), merged)
}
