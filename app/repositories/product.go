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

// ErrNotFound is returned by every repository when a lookup matches nothing.
var ErrNotFound = errors.New("document not found")

// ProductFilter narrows and orders a catalog listing.
type ProductFilter struct {
	Category    string
	SubCategory string
	Featured    *bool
	Search      string
	Sort        string // "price_asc", "price_desc", "rating", "newest"
	Page        int
	PerPage     int
}

// ProductRepository persists catalog entries.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection("products")}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Images == nil {
		p.Images = []string{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List applies the filter and returns the page plus the total matching count.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.SubCategory != "" {
		query["subCategory"] = f.SubCategory
	}
	if f.Featured != nil {
		query["featured"] = *f.Featured
	}
	if f.Search != "" {
		query["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	switch f.Sort {
	case "price_asc":
		sort = bson.D{{Key: "finalPrice", Value: 1}}
	case "price_desc":
		sort = bson.D{{Key: "finalPrice", Value: -1}}
	case "rating":
		sort = bson.D{{Key: "rating", Value: -1}}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(sort)
	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * f.PerPage)).SetLimit(int64(f.PerPage))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock atomically reserves qty units. The filter requires the
// current stock to cover qty, so a concurrent checkout can never drive stock
// negative. Returns false when the product is missing or understocked.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// IncrementStock returns previously reserved units, used to compensate a
// checkout that failed after some lines were already decremented.
func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
	)
	return err
}

// UpdateRating writes the recomputed review aggregate onto the product.
func (r *ProductRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "numReviews": numReviews, "updatedAt": time.Now().UTC()}},
	)
	return err
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// CountLowStock counts products whose stock fell under threshold.
func (r *ProductRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"stock": bson.M{"$lt": threshold}})
}

// FindLowStock returns products under threshold, lowest stock first.
func (r *ProductRepository) FindLowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"stock": bson.M{"$lt": threshold}},
		options.Find().SetSort(bson.D{{Key: "stock", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
