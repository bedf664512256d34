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

// CartRepository persists one cart document per user.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository() *CartRepository {
	return &CartRepository{col: database.Collection("carts")}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var c models.Cart
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save upserts the full cart document keyed by user. The unique index on
// userId keeps concurrent first-writes from creating two carts.
func (r *CartRepository) Save(ctx context.Context, c *models.Cart) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": c.UserID},
		bson.M{"$set": bson.M{
			"items":     c.Items,
			"updatedAt": c.UpdatedAt,
		}, "$setOnInsert": bson.M{
			"userId":    c.UserID,
			"createdAt": c.CreatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Clear empties the cart without deleting the document.
func (r *CartRepository) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now().UTC()}},
	)
	return err
}
