package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OpenMongo connects to MongoDB with the same bounded retry as OpenGorm and
// returns the named database from the connection URI.
func OpenMongo(uri, dbName string) (*mongo.Database, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		slog.Info("connecting to MongoDB", "attempt", attempt, "of", connectAttempts)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(ctx, nil)
		}
		cancel()

		if err == nil {
			slog.Info("connected to MongoDB")
			return client.Database(dbName), nil
		}

		lastErr = err
		slog.Warn("MongoDB connection failed", "attempt", attempt, "err", err)
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	return nil, fmt.Errorf("connect to MongoDB after %d attempts: %w", connectAttempts, lastErr)
}
