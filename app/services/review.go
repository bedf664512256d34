package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/pkg/cache"
)

// ReviewStore is the slice of the review repository the review service needs.
type ReviewStore interface {
	Insert(ctx context.Context, rev *models.Review) error
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByProductAndUser(ctx context.Context, productID, userID primitive.ObjectID) (*models.Review, error)
	Update(ctx context.Context, rev *models.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Aggregate(ctx context.Context, productID primitive.ObjectID) (float64, int, error)
}

// RatingWriter is the slice of the product repository reviews write back to.
type RatingWriter interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error
}

// PurchaseChecker gates review creation on a delivered order.
type PurchaseChecker interface {
	HasDelivered(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
}

type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title   string `json:"title" validate:"nullable,max=100"`
	Comment string `json:"comment" validate:"nullable,max=1000"`
}

// Eligibility explains whether the caller may review a product.
type Eligibility struct {
	CanReview bool   `json:"canReview"`
	Reason    string `json:"reason,omitempty"`
}

// ReviewService manages verified-purchase reviews. Every mutation recomputes
// the product's cached rating and review count from scratch.
type ReviewService struct {
	reviews  ReviewStore
	products RatingWriter
	orders   PurchaseChecker
}

func NewReviewService(reviews ReviewStore, products RatingWriter, orders PurchaseChecker) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, orders: orders}
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.FindByProduct(ctx, productID)
}

// Eligibility reports whether the user may review the product: they need a
// delivered order containing it and must not have reviewed it already.
func (s *ReviewService) Eligibility(ctx context.Context, userID, productID primitive.ObjectID) (*Eligibility, error) {
	delivered, err := s.orders.HasDelivered(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !delivered {
		return &Eligibility{CanReview: false, Reason: "no delivered order for this product"}, nil
	}

	_, err = s.reviews.FindByProductAndUser(ctx, productID, userID)
	if err == nil {
		return &Eligibility{CanReview: false, Reason: "already reviewed"}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	return &Eligibility{CanReview: true}, nil
}

// Create adds a review. userName is denormalized onto the review document.
func (s *ReviewService) Create(ctx context.Context, userID primitive.ObjectID, userName string, productID primitive.ObjectID, in CreateReviewInput) (*models.Review, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	delivered, err := s.orders.HasDelivered(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !delivered {
		return nil, ErrNotPurchased
	}

	rev := &models.Review{
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
	}
	if err := s.reviews.Insert(ctx, rev); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	if err := s.recompute(ctx, productID); err != nil {
		return nil, err
	}
	return rev, nil
}

// Update edits the caller's own review.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID primitive.ObjectID, in CreateReviewInput) (*models.Review, error) {
	rev, err := s.reviews.FindByID(ctx, reviewID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rev.UserID != userID {
		return nil, ErrForbidden
	}

	rev.Rating = in.Rating
	rev.Title = in.Title
	rev.Comment = in.Comment
	if err := s.reviews.Update(ctx, rev); err != nil {
		return nil, err
	}

	if err := s.recompute(ctx, rev.ProductID); err != nil {
		return nil, err
	}
	return rev, nil
}

// Delete removes a review. The owner may delete their own; admins may delete
// any.
func (s *ReviewService) Delete(ctx context.Context, userID primitive.ObjectID, isAdmin bool, reviewID primitive.ObjectID) error {
	rev, err := s.reviews.FindByID(ctx, reviewID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if rev.UserID != userID && !isAdmin {
		return ErrForbidden
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	return s.recompute(ctx, rev.ProductID)
}

// recompute re-aggregates the product rating after any review mutation.
// Deleting the last review resets the product to (0, 0).
func (s *ReviewService) recompute(ctx context.Context, productID primitive.ObjectID) error {
	avg, count, err := s.reviews.Aggregate(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.products.UpdateRating(ctx, productID, avg, count); err != nil {
		return err
	}
	_ = cache.DelPrefix(productCachePrefix)
	return nil
}
