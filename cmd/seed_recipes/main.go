package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/spicelab/recipebox/config"
	"github.com/spicelab/recipebox/internal/client"
	"github.com/spicelab/recipebox/internal/database"
	"github.com/spicelab/recipebox/internal/store"
)

// Seeds the configured store with the sample catalog so a fresh install
// has something to show. Safe to re-run: recipes already present are
// skipped by id.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	seeded := 0
	for _, recipe := range client.SampleRecipes() {
		if _, err := st.GetRecipe(ctx, recipe.ID); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Fatalf("Failed to check recipe %s: %v", recipe.ID, err)
		}

		r := recipe
		if _, err := st.CreateRecipe(ctx, &r); err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipe.Title, err)
		}
		log.Printf("Seeded recipe: %s", recipe.Title)
		seeded++
	}

	log.Printf("Done, %d new recipes seeded", seeded)
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.StorageBackend == config.BackendMongo {
		db, err := database.OpenMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		ms := store.NewMongoStore(db)
		if err := ms.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return ms, nil
	}

	db, err := database.OpenGorm(cfg)
	if err != nil {
		return nil, err
	}
	gs := store.NewGormStore(db)
	if err := gs.Migrate(); err != nil {
		return nil, err
	}
	return gs, nil
}
