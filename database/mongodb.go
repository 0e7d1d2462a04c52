package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	MONGO_TIMEOUT                  = 20 * time.Second
	COLLECTION_ATTRIBUTION_HISTORY = "attribution_history"
	COLLECTION_INSIGHT_SNAPSHOTS   = "insight_snapshots"
)

const (
	ENV_DEVELOPMENT = "development"
	ENV_HOMOLOG     = "homolog"
	ENV_RELEASE     = "production"
)

// GetDB maps the deployment environment onto its Mongo database name.
func GetDB(environment string) (string, error) {
	switch environment {
	case ENV_RELEASE:
		return "production", nil
	case ENV_HOMOLOG:
		return "homolog", nil
	case ENV_DEVELOPMENT:
		return "development", nil
	}
	return "", fmt.Errorf("[MongoDB] invalid environment %q", environment)
}

func OpenMongo(ctx context.Context, uri, environment string) (*mongo.Database, error) {
	name, err := GetDB(environment)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(name), nil
}
