package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
)

func TestDashboardStats(t *testing.T) {
	low := &models.Product{Name: "Belt", Price: 4999, Stock: 8}
	low.RecalculateFinalPrice()
	ok := &models.Product{Name: "Bar", Price: 24999, Stock: 25}
	ok.RecalculateFinalPrice()
	products := newFakeProducts(low, ok)

	users := newFakeUsers(
		&models.User{Email: "a@x.com", Role: models.RoleUser},
		&models.User{Email: "admin@x.com", Role: models.RoleAdmin},
	)

	orders := newFakeOrders()
	paid := &models.Order{UserID: primitive.NewObjectID(), OrderStatus: models.OrderDelivered, PaymentStatus: models.PaymentPaid, TotalAmount: 10000}
	pending := &models.Order{UserID: primitive.NewObjectID(), OrderStatus: models.OrderProcessing, PaymentStatus: models.PaymentPending, TotalAmount: 5000}
	require.NoError(t, orders.Insert(context.Background(), paid))
	require.NoError(t, orders.Insert(context.Background(), pending))

	svc := NewAdminService(users, products, orders)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalAdmins)
	assert.Equal(t, int64(1), stats.TotalCustomers)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, 10000.0, stats.Revenue)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.OrdersByStatus[models.OrderProcessing])
	assert.Equal(t, int64(1), stats.OrdersByStatus[models.OrderDelivered])
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	admin := &models.User{Email: "admin@x.com", Role: models.RoleAdmin}
	users := newFakeUsers(admin)
	svc := NewAdminService(users, newFakeProducts(), newFakeOrders())

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), admin.ID, admin.ID), ErrForbidden)
}

func TestAdminDeleteUser(t *testing.T) {
	admin := &models.User{Email: "admin@x.com", Role: models.RoleAdmin}
	target := &models.User{Email: "user@x.com", Role: models.RoleUser}
	users := newFakeUsers(admin, target)
	svc := NewAdminService(users, newFakeProducts(), newFakeOrders())

	require.NoError(t, svc.DeleteUser(context.Background(), admin.ID, target.ID))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), admin.ID, target.ID), ErrNotFound)
}

func TestAdminSetUserRole(t *testing.T) {
	admin := &models.User{Email: "admin@x.com", Role: models.RoleAdmin}
	target := &models.User{Email: "user@x.com", Role: models.RoleUser}
	users := newFakeUsers(admin, target)
	svc := NewAdminService(users, newFakeProducts(), newFakeOrders())

	require.NoError(t, svc.SetUserRole(context.Background(), admin.ID, target.ID, models.RoleAdmin))
	promoted, err := users.FindByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	// Unknown role and self-demotion are rejected.
	assert.ErrorIs(t, svc.SetUserRole(context.Background(), admin.ID, target.ID, "owner"), ErrInvalidStatus)
	assert.ErrorIs(t, svc.SetUserRole(context.Background(), admin.ID, admin.ID, models.RoleUser), ErrForbidden)
}
