package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
)

func deliveredOrderFor(t *testing.T, orders *fakeOrders, userID, productID primitive.ObjectID) {
	t.Helper()
	o := &models.Order{
		UserID:      userID,
		OrderStatus: models.OrderDelivered,
		Items:       []models.OrderItem{{ProductID: productID, Quantity: 1}},
	}
	require.NoError(t, orders.Insert(context.Background(), o))
}

func TestReviewCreateRequiresDeliveredOrder(t *testing.T) {
	p := &models.Product{Name: "Power Rack", Price: 45000, Stock: 3}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	svc := NewReviewService(newFakeReviews(), products, newFakeOrders())

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), "Neel", p.ID, CreateReviewInput{Rating: 5})
	assert.ErrorIs(t, err, ErrNotPurchased)
}

func TestReviewCreateRecomputesRating(t *testing.T) {
	p := &models.Product{Name: "Power Rack", Price: 45000, Stock: 3}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	orders := newFakeOrders()
	svc := NewReviewService(newFakeReviews(), products, orders)

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	deliveredOrderFor(t, orders, alice, p.ID)
	deliveredOrderFor(t, orders, bob, p.ID)

	_, err := svc.Create(context.Background(), alice, "Alice", p.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob, "Bob", p.ID, CreateReviewInput{Rating: 5})
	require.NoError(t, err)

	live, _ := products.FindByID(context.Background(), p.ID)
	assert.Equal(t, 4.5, live.Rating)
	assert.Equal(t, 2, live.NumReviews)
}

func TestReviewCreateRejectsSecondReview(t *testing.T) {
	p := &models.Product{Name: "Bench", Price: 9000, Stock: 5}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	orders := newFakeOrders()
	svc := NewReviewService(newFakeReviews(), products, orders)

	userID := primitive.NewObjectID()
	deliveredOrderFor(t, orders, userID, p.ID)

	_, err := svc.Create(context.Background(), userID, "Asha", p.ID, CreateReviewInput{Rating: 3})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), userID, "Asha", p.ID, CreateReviewInput{Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewEligibility(t *testing.T) {
	p := &models.Product{Name: "Bench", Price: 9000, Stock: 5}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	orders := newFakeOrders()
	svc := NewReviewService(newFakeReviews(), products, orders)
	userID := primitive.NewObjectID()

	elig, err := svc.Eligibility(context.Background(), userID, p.ID)
	require.NoError(t, err)
	assert.False(t, elig.CanReview)

	deliveredOrderFor(t, orders, userID, p.ID)
	elig, err = svc.Eligibility(context.Background(), userID, p.ID)
	require.NoError(t, err)
	assert.True(t, elig.CanReview)

	_, err = svc.Create(context.Background(), userID, "Asha", p.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)
	elig, err = svc.Eligibility(context.Background(), userID, p.ID)
	require.NoError(t, err)
	assert.False(t, elig.CanReview)
}

func TestReviewUpdateOnlyByOwner(t *testing.T) {
	p := &models.Product{Name: "Bench", Price: 9000, Stock: 5}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	orders := newFakeOrders()
	reviews := newFakeReviews()
	svc := NewReviewService(reviews, products, orders)

	owner := primitive.NewObjectID()
	deliveredOrderFor(t, orders, owner, p.ID)
	rev, err := svc.Create(context.Background(), owner, "Asha", p.ID, CreateReviewInput{Rating: 2})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), primitive.NewObjectID(), rev.ID, CreateReviewInput{Rating: 5})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(context.Background(), owner, rev.ID, CreateReviewInput{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	live, _ := products.FindByID(context.Background(), p.ID)
	assert.Equal(t, 5.0, live.Rating)
}

func TestReviewDeleteLastResetsAggregate(t *testing.T) {
	p := &models.Product{Name: "Bench", Price: 9000, Stock: 5}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	orders := newFakeOrders()
	svc := NewReviewService(newFakeReviews(), products, orders)

	userID := primitive.NewObjectID()
	deliveredOrderFor(t, orders, userID, p.ID)
	rev, err := svc.Create(context.Background(), userID, "Asha", p.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, false, rev.ID))

	live, _ := products.FindByID(context.Background(), p.ID)
	assert.Equal(t, 0.0, live.Rating)
	assert.Equal(t, 0, live.NumReviews)
}

func TestReviewDeleteByAdmin(t *testing.T) {
	p := &models.Product{Name: "Bench", Price: 9000, Stock: 5}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	orders := newFakeOrders()
	svc := NewReviewService(newFakeReviews(), products, orders)

	owner := primitive.NewObjectID()
	deliveredOrderFor(t, orders, owner, p.ID)
	rev, err := svc.Create(context.Background(), owner, "Asha", p.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	stranger := primitive.NewObjectID()
	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, false, rev.ID), ErrForbidden)
	assert.NoError(t, svc.Delete(context.Background(), stranger, true, rev.ID))
}

func TestReviewRatingRoundsToOneDecimal(t *testing.T) {
	p := &models.Product{Name: "Bench", Price: 9000, Stock: 5}
	p.RecalculateFinalPrice()
	products := newFakeProducts(p)
	orders := newFakeOrders()
	svc := NewReviewService(newFakeReviews(), products, orders)

	ratings := []int{5, 4, 4} // avg 4.333... → 4.3
	for _, rating := range ratings {
		userID := primitive.NewObjectID()
		deliveredOrderFor(t, orders, userID, p.ID)
		_, err := svc.Create(context.Background(), userID, "U", p.ID, CreateReviewInput{Rating: rating})
		require.NoError(t, err)
	}

	live, _ := products.FindByID(context.Background(), p.ID)
	assert.Equal(t, 4.3, live.Rating)
}
