// Package repository provides the document store access layer.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	booksCollection = "books"
	usersCollection = "users"
)

// Repository provides document store access methods.
type Repository struct {
	client *mongo.Client
	books  *mongo.Collection
	users  *mongo.Collection
}

// New connects to the document store and returns a Repository.
// The connection pool lives for the lifetime of the process.
func New(ctx context.Context, mongoURL, database string) (*Repository, error) {
	opts := options.Client().
		ApplyURI(mongoURL).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	db := client.Database(database)
	return &Repository{
		client: client,
		books:  db.Collection(booksCollection),
		users:  db.Collection(usersCollection),
	}, nil
}

// Ping checks document store connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Reset drops the application collections. Intended for test setups.
func (r *Repository) Reset(ctx context.Context) error {
	if err := r.books.Drop(ctx); err != nil {
		return fmt.Errorf("drop books collection: %w", err)
	}
	if err := r.users.Drop(ctx); err != nil {
		return fmt.Errorf("drop users collection: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the application relies on.
// Safe to call on every startup; index creation is idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = r.books.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create books indexes: %w", err)
	}

	return nil
}
