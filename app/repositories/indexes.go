package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/fitsetup/pkg/database"
)

// EnsureIndexes creates every index the repositories rely on. Safe to call on
// every boot; Mongo treats an existing identical index as a no-op.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"products": {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "subCategory", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}}},
		},
		"carts": {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique},
		},
		"wishlists": {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique},
		},
		"orders": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"reviews": {
			{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "userId", Value: 1}}, Options: unique},
		},
		"diet_logs": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}, Options: unique},
		},
		"workout_logs": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
