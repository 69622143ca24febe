package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/spicelab/recipebox/config"
	"github.com/spicelab/recipebox/internal/database"
	"github.com/spicelab/recipebox/internal/server"
	"github.com/spicelab/recipebox/internal/store"
)

func main() {
	// Load .env (ignored in production if not present)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	var handler slog.Handler
	if config.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StorageBackend, "err", err)
		os.Exit(1)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		slog.Error("failed to connect to Redis", "err", err)
		os.Exit(1)
	}

	srv := server.New(cfg, st, redisClient)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.ServerPort, "backend", cfg.StorageBackend)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("shutdown signal received, draining connections", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "err", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		slog.Error("error closing store", "err", err)
	}
	slog.Info("server stopped")
}

// openStore builds the configured persistence backend and prepares its
// schema (tables or indexes).
func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StorageBackend == config.BackendMongo {
		db, err := database.OpenMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		st := store.NewMongoStore(db)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := st.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return st, nil
	}

	db, err := database.OpenGorm(cfg)
	if err != nil {
		return nil, err
	}
	st := store.NewGormStore(db)
	if err := st.Migrate(); err != nil {
		return nil, err
	}
	return st, nil
}
