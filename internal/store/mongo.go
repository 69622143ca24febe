package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spicelab/recipebox/internal/models"
)

const (
	recipesCollection = "recipes"
	usersCollection   = "users"
)

// MongoStore is the document implementation of Store. Favorites are an
// ordered array of recipe ids embedded in the user document; $addToSet and
// $pull keep the pair unique without a check-then-act race. Ids are the same
// UUID strings the relational backend uses, stored as _id.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type recipeDoc struct {
	ID          string    `bson:"_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
	Title       string    `bson:"title"`
	Category    string    `bson:"category"`
	Description string    `bson:"description"`
	PrepTime    string    `bson:"prep_time"`
	Difficulty  string    `bson:"difficulty"`
	Image       string    `bson:"image"`
	Ingredients []string  `bson:"ingredients"`
	Steps       []string  `bson:"steps"`
}

type userDoc struct {
	ID           string    `bson:"_id"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Favorites    []string  `bson:"favorites"`
}

func (d recipeDoc) model() (models.Recipe, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("malformed recipe id %q: %w", d.ID, err)
	}
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	steps := d.Steps
	if steps == nil {
		steps = []string{}
	}
	return models.Recipe{
		ID:          id,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Title:       d.Title,
		Category:    d.Category,
		Description: d.Description,
		PrepTime:    d.PrepTime,
		Difficulty:  d.Difficulty,
		Image:       d.Image,
		Ingredients: models.StringArray(ingredients),
		Steps:       models.StringArray(steps),
	}, nil
}

func (d userDoc) model() (models.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("malformed user id %q: %w", d.ID, err)
	}
	return models.User{
		ID:           id,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}, nil
}

func (s *MongoStore) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	cursor, err := s.db.Collection(recipesCollection).Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer cursor.Close(ctx)

	recipes := []models.Recipe{}
	for cursor.Next(ctx) {
		var doc recipeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("list recipes: %w", err)
		}
		recipe, err := doc.model()
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (s *MongoStore) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var doc recipeDoc
	err := s.db.Collection(recipesCollection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	recipe, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *MongoStore) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if strings.TrimSpace(recipe.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	}

	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	if recipe.Category == "" {
		recipe.Category = models.DefaultCategory
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = models.StringArray{}
	}
	if recipe.Steps == nil {
		recipe.Steps = models.StringArray{}
	}
	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	doc := recipeDoc{
		ID:          recipe.ID.String(),
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
		Title:       recipe.Title,
		Category:    recipe.Category,
		Description: recipe.Description,
		PrepTime:    recipe.PrepTime,
		Difficulty:  recipe.Difficulty,
		Image:       recipe.Image,
		Ingredients: recipe.Ingredients,
		Steps:       recipe.Steps,
	}
	if _, err := s.db.Collection(recipesCollection).InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

func (s *MongoStore) UpdateRecipe(ctx context.Context, id uuid.UUID, patch RecipePatch) (*models.Recipe, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("title cannot be empty: %w", ErrValidation)
		}
		set["title"] = *patch.Title
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.PrepTime != nil {
		set["prep_time"] = *patch.PrepTime
	}
	if patch.Difficulty != nil {
		set["difficulty"] = *patch.Difficulty
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Ingredients != nil {
		set["ingredients"] = *patch.Ingredients
	}
	if patch.Steps != nil {
		set["steps"] = *patch.Steps
	}

	var doc recipeDoc
	err := s.db.Collection(recipesCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	recipe, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *MongoStore) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Collection(recipesCollection).DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	// Cascade: drop the reference from every user's favorites array.
	_, err = s.db.Collection(usersCollection).UpdateMany(ctx,
		bson.M{"favorites": id.String()},
		bson.M{"$pull": bson.M{"favorites": id.String()}})
	if err != nil {
		return fmt.Errorf("delete recipe favorites: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := userDoc{
		ID:           user.ID.String(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Favorites:    []string{},
	}
	if _, err := s.db.Collection(usersCollection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id.String()})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := s.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	user, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) favoriteIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var doc struct {
		Favorites []string `bson:"favorites"`
	}
	err := s.db.Collection(usersCollection).FindOne(ctx,
		bson.M{"_id": userID.String()},
		options.FindOne().SetProjection(bson.M{"favorites": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	return doc.Favorites, nil
}

func (s *MongoStore) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	ids, err := s.favoriteIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}

	cursor, err := s.db.Collection(recipesCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[string]models.Recipe, len(ids))
	for cursor.Next(ctx) {
		var doc recipeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("list favorites: %w", err)
		}
		recipe, err := doc.model()
		if err != nil {
			return nil, err
		}
		byID[doc.ID] = recipe
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	// The array is in insertion order; walk it backwards so the most
	// recently favorited recipe comes first. Dangling ids are skipped.
	recipes := []models.Recipe{}
	for i := len(ids) - 1; i >= 0; i-- {
		if recipe, ok := byID[ids[i]]; ok {
			recipes = append(recipes, recipe)
		}
	}
	return recipes, nil
}

func (s *MongoStore) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) ([]models.Recipe, error) {
	count, err := s.db.Collection(recipesCollection).CountDocuments(ctx, bson.M{"_id": recipeID.String()})
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	_, err = s.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		bson.M{"$addToSet": bson.M{"favorites": recipeID.String()}})
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return s.ListFavorites(ctx, userID)
}

func (s *MongoStore) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) ([]models.Recipe, error) {
	ids, err := s.favoriteIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}

	_, err = s.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		bson.M{"$pull": bson.M{"favorites": recipeID.String()}})
	if err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	return s.ListFavorites(ctx, userID)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}
