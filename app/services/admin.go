package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
)

// AdminUserStore is the slice of the user repository admin tooling needs.
type AdminUserStore interface {
	All(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// StatsProductStore is the slice of the product repository the dashboard needs.
type StatsProductStore interface {
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	FindLowStock(ctx context.Context, threshold int) ([]models.Product, error)
}

// StatsOrderStore is the slice of the order repository the dashboard needs.
type StatsOrderStore interface {
	Count(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// DashboardStats is the admin overview payload.
type DashboardStats struct {
	TotalUsers     int64            `json:"totalUsers"`
	TotalAdmins    int64            `json:"totalAdmins"`
	TotalCustomers int64            `json:"totalCustomers"`
	TotalProducts  int64            `json:"totalProducts"`
	TotalOrders    int64            `json:"totalOrders"`
	Revenue        float64          `json:"revenue"`
	LowStockCount  int64            `json:"lowStockCount"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
}

// AdminService backs the admin dashboard and user management.
type AdminService struct {
	users    AdminUserStore
	products StatsProductStore
	orders   StatsOrderStore
}

func NewAdminService(users AdminUserStore, products StatsProductStore, orders StatsOrderStore) *AdminService {
	return &AdminService{users: users, products: products, orders: orders}
}

func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAdmins, err = s.users.CountByRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = s.users.CountByRole(ctx, models.RoleUser); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Revenue, err = s.orders.Revenue(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.products.CountLowStock(ctx, LowStockThreshold); err != nil {
		return nil, err
	}
	if stats.OrdersByStatus, err = s.orders.CountByStatus(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *AdminService) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.FindLowStock(ctx, LowStockThreshold)
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

// DeleteUser removes an account. Admins cannot delete themselves, so the
// system always keeps at least the acting admin.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return ErrForbidden
	}
	err := s.users.Delete(ctx, targetID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// SetUserRole promotes or demotes an account. Self-demotion is rejected for
// the same reason as self-deletion.
func (s *AdminService) SetUserRole(ctx context.Context, actorID, targetID primitive.ObjectID, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return ErrInvalidStatus
	}
	if actorID == targetID && role != models.RoleAdmin {
		return ErrForbidden
	}
	err := s.users.UpdateRole(ctx, targetID, role)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
