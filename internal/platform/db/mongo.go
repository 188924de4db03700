// Package db wires the MongoDB client used by every repository.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names shared between repositories and index setup.
const (
	CollUsers       = "users"
	CollBlogs       = "blogs"
	CollCourses     = "courses"
	CollGallery     = "gallery"
	CollContacts    = "contacts"
	CollSubscribers = "subscribers"
)

// Connect opens a MongoDB client and verifies connectivity.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("platform/db: connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("platform/db: ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the services rely on. A unique
// index is the authoritative duplicate signal: concurrent inserts that pass
// an application-level existence check still fail here.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := func(coll, field string) error {
		_, err := database.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("platform/db: index %s.%s: %w", coll, field, err)
		}
		return nil
	}

	if err := unique(CollUsers, "email"); err != nil {
		return err
	}
	if err := unique(CollSubscribers, "email"); err != nil {
		return err
	}
	if err := unique(CollBlogs, "slug"); err != nil {
		return err
	}
	return unique(CollCourses, "slug")
}
