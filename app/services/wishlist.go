package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
)

// WishlistStore is the slice of the wishlist repository the service needs.
type WishlistStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error)
	AddItem(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

// WishlistEntry is a wishlist line joined with its live product.
type WishlistEntry struct {
	Product models.Product `json:"product"`
	AddedAt string         `json:"addedAt"`
}

// WishlistService manages per-user wishlists. A product appears at most once
// per wishlist; the duplicate guard lives in the store's add filter, not in a
// read-then-write check, so concurrent adds cannot slip a second copy in.
type WishlistService struct {
	wishlists WishlistStore
	products  ProductStore
}

func NewWishlistService(wishlists WishlistStore, products ProductStore) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

// List returns the wishlist joined with live product data. Items whose
// product has been removed from the catalog are silently dropped from the
// view.
func (s *WishlistService) List(ctx context.Context, userID primitive.ObjectID) ([]WishlistEntry, error) {
	w, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return []WishlistEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := []WishlistEntry{}
	for _, it := range w.Items {
		p, err := s.products.FindByID(ctx, it.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, WishlistEntry{
			Product: *p,
			AddedAt: it.AddedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return entries, nil
}

// Add saves a product for later. Adding one already present is rejected.
func (s *WishlistService) Add(ctx context.Context, userID, productID primitive.ObjectID) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	added, err := s.wishlists.AddItem(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !added {
		return ErrAlreadyWishlisted
	}
	return nil
}

// Contains reports whether the product is on the user's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	w, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return w.Has(productID), nil
}

// Remove drops a product from the wishlist. Removing an absent item reports
// not found.
func (s *WishlistService) Remove(ctx context.Context, userID, productID primitive.ObjectID) error {
	w, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !w.Has(productID) {
		return ErrNotFound
	}
	return s.wishlists.RemoveItem(ctx, userID, productID)
}

func (s *WishlistService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.wishlists.Clear(ctx, userID)
}
