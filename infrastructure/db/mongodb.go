package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messages/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// MongoStore owns the client shared by the message and chat repositories.
type MongoStore struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewMongoStore(ctx context.Context, cfg config.StoreConfig) (*MongoStore, error) {
	if cfg.MongoDatabase == "" {
		return nil, errors.New("mongo: database name required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &MongoStore{
		Client: client,
		DB:     client.Database(cfg.MongoDatabase),
	}, nil
}

// clientOptions leaves the read preference at the driver default so the
// count and the fetch of one listing read the same node.
func clientOptions(cfg config.StoreConfig) *options.ClientOptions {
	return options.Client().ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(100)
}

func (m *MongoStore) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	disconnectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return m.Client.Disconnect(disconnectCtx)
}

// Ping backs the health endpoint.
func (m *MongoStore) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo: client is nil")
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return m.Client.Ping(pingCtx, nil)
}
