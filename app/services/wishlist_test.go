package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
)

func TestWishlistAddAndList(t *testing.T) {
	p := &models.Product{Name: "Gym Rings", Price: 1500, Stock: 40}
	p.RecalculateFinalPrice()
	svc := NewWishlistService(newFakeWishlists(), newFakeProducts(p))
	userID := primitive.NewObjectID()

	require.NoError(t, svc.Add(context.Background(), userID, p.ID))

	entries, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Gym Rings", entries[0].Product.Name)
}

func TestWishlistRejectsDuplicateAdd(t *testing.T) {
	p := &models.Product{Name: "Gym Rings", Price: 1500, Stock: 40}
	p.RecalculateFinalPrice()
	svc := NewWishlistService(newFakeWishlists(), newFakeProducts(p))
	userID := primitive.NewObjectID()

	require.NoError(t, svc.Add(context.Background(), userID, p.ID))
	assert.ErrorIs(t, svc.Add(context.Background(), userID, p.ID), ErrAlreadyWishlisted)

	entries, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc := NewWishlistService(newFakeWishlists(), newFakeProducts())
	err := svc.Add(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistListDropsVanishedProducts(t *testing.T) {
	p := &models.Product{Name: "Discontinued Bench", Price: 5000, Stock: 1}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	svc := NewWishlistService(newFakeWishlists(), products)
	userID := primitive.NewObjectID()

	require.NoError(t, svc.Add(context.Background(), userID, p.ID))
	require.NoError(t, products.Delete(context.Background(), p.ID))

	entries, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWishlistRemove(t *testing.T) {
	p := &models.Product{Name: "Gym Rings", Price: 1500, Stock: 40}
	p.RecalculateFinalPrice()
	svc := NewWishlistService(newFakeWishlists(), newFakeProducts(p))
	userID := primitive.NewObjectID()

	// Removing from an empty wishlist reports not found.
	assert.ErrorIs(t, svc.Remove(context.Background(), userID, p.ID), ErrNotFound)

	require.NoError(t, svc.Add(context.Background(), userID, p.ID))
	require.NoError(t, svc.Remove(context.Background(), userID, p.ID))
	assert.ErrorIs(t, svc.Remove(context.Background(), userID, p.ID), ErrNotFound)
}

func TestWishlistListEmptyForNewUser(t *testing.T) {
	svc := NewWishlistService(newFakeWishlists(), newFakeProducts())
	entries, err := svc.List(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestWishlistContains(t *testing.T) {
	p := &models.Product{Name: "Jump Rope", Price: 500, Stock: 10}
	products := newFakeProducts(p)
	svc := NewWishlistService(newFakeWishlists(), products)
	userID := primitive.NewObjectID()

	in, err := svc.Contains(context.Background(), userID, p.ID)
	require.NoError(t, err)
	assert.False(t, in)

	require.NoError(t, svc.Add(context.Background(), userID, p.ID))

	in, err = svc.Contains(context.Background(), userID, p.ID)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = svc.Contains(context.Background(), userID, primitive.NewObjectID())
	require.NoError(t, err)
	assert.False(t, in)
}
