package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/pkg/database"
)

// WishlistRepository persists one wishlist document per user.
type WishlistRepository struct {
	col *mongo.Collection
}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{col: database.Collection("wishlists")}
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	var w models.Wishlist
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// AddItem pushes productID onto the user's wishlist. The filter excludes
// documents already holding the id, so a concurrent double-add matches at
// most once; the upsert creates the wishlist on first use. Returns false
// when the item was already present.
func (r *WishlistRepository) AddItem(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "items.productId": bson.M{"$ne": productID}},
		bson.M{
			"$push":        bson.M{"items": models.WishlistItem{ProductID: productID, AddedAt: now}},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"userId": userID, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		// Upsert raced the unique userId index: the document exists and
		// already holds the item.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1 || res.UpsertedCount == 1, nil
}

func (r *WishlistRepository) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *WishlistRepository) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.WishlistItem{}, "updatedAt": time.Now().UTC()}},
	)
	return err
}
