package client

import (
	"github.com/google/uuid"

	"github.com/spicelab/recipebox/internal/models"
)

// sampleRecipes is the built-in fallback catalog used when the server is
// unreachable. Ids are fixed so local favorites keep pointing at the same
// entries across runs.
var sampleRecipes = []models.Recipe{
	{
		ID:          uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Title:       "Chicken Kottu Roti",
		Category:    "Street Food",
		PrepTime:    "35 mins",
		Difficulty:  "Medium",
		Description: "Chopped godamba roti tossed with spiced chicken, vegetables, and a splash of gravy.",
		Ingredients: models.StringArray{
			"6 godamba roti, cut into thin strips",
			"250g cooked chicken, shredded",
			"2 eggs, lightly beaten",
			"1 cup mixed vegetables (carrot, leeks, cabbage)",
			"1 onion, sliced",
			"2 green chilies, sliced",
			"2 tbsp kottu curry sauce or chicken gravy",
			"1 tsp curry powder",
			"Salt and black pepper to taste",
		},
		Steps: models.StringArray{
			"Heat a large skillet on medium heat and add a drizzle of oil.",
			"Stir-fry onion, chilies, and vegetables until fragrant and slightly soft.",
			"Add chicken and curry powder, then mix in the roti strips.",
			"Push everything to the side, scramble the eggs, and fold through.",
			"Pour in gravy, toss well, season, and serve hot with lime.",
		},
	},
	{
		ID:          uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		Title:       "Pol Sambol & Hoppers",
		Category:    "Breakfast",
		PrepTime:    "30 mins",
		Difficulty:  "Easy",
		Description: "Crisp-edged hoppers filled with coconut sambol and a hint of lime.",
		Ingredients: models.StringArray{
			"2 cups rice flour",
			"1 cup thick coconut milk",
			"1 tsp instant yeast",
			"1 tsp sugar",
			"1 tsp salt",
			"2 cups warm water",
			"1 cup freshly grated coconut",
			"1 small red onion, finely chopped",
			"2 red chilies, sliced",
			"Juice of 1 lime",
			"Salt to taste",
		},
		Steps: models.StringArray{
			"Whisk rice flour, yeast, sugar, salt, warm water, and coconut milk into a thin batter. Rest 1 hour.",
			"Heat a hopper pan, pour in a ladle of batter, swirl to create thin sides, and cook with lid on.",
			"For pol sambol, mix grated coconut, onion, chilies, lime, and salt until bright orange.",
			"Serve warm hoppers with a spoon of sambol in the center.",
		},
	},
	{
		ID:          uuid.MustParse("00000000-0000-0000-0000-000000000003"),
		Title:       "Watalappan",
		Category:    "Dessert",
		PrepTime:    "50 mins",
		Difficulty:  "Medium",
		Description: "A silky coconut custard sweetened with kithul jaggery and warm spices.",
		Ingredients: models.StringArray{
			"1 cup kithul jaggery, grated",
			"1 cup thick coconut milk",
			"4 eggs",
			"1/4 tsp ground cardamom",
			"A pinch of grated nutmeg",
			"Cashews for topping",
		},
		Steps: models.StringArray{
			"Gently melt the jaggery with a splash of water and cool slightly.",
			"Whisk eggs, coconut milk, jaggery syrup, and spices until combined.",
			"Strain into a heatproof dish and top with cashews.",
			"Steam on low heat until just set, about 35 minutes, then chill.",
		},
	},
}

// SampleRecipes returns a copy of the built-in catalog.
func SampleRecipes() []models.Recipe {
	out := make([]models.Recipe, len(sampleRecipes))
	copy(out, sampleRecipes)
	return out
}
