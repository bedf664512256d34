// Package seeders loads development fixtures: an admin account and a small
// equipment catalog.
package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/config"
	"github.com/shashiranjanraj/fitsetup/pkg/auth"
	"github.com/shashiranjanraj/fitsetup/pkg/logger"
)

// Run seeds the admin user and the catalog. Idempotent: an existing admin or
// a non-empty catalog is left untouched.
func Run(ctx context.Context) error {
	if err := seedAdmin(ctx); err != nil {
		return err
	}
	return seedProducts(ctx)
}

func seedAdmin(ctx context.Context) error {
	users := repositories.NewUserRepository()

	email := config.Get("ADMIN_EMAIL", "admin@fitsetup.app")
	if _, err := users.FindByEmail(ctx, email); err == nil {
		logger.Info("seed: admin already exists", "email", email)
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "changeme123"))
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:     "Store Admin",
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("seed: admin created", "email", email)
	return nil
}

func seedProducts(ctx context.Context) error {
	products := repositories.NewProductRepository()

	if n, err := products.Count(ctx); err != nil {
		return err
	} else if n > 0 {
		logger.Info("seed: catalog already populated", "count", n)
		return nil
	}

	catalog := []models.Product{
		{
			Name:        "Olympic Barbell 20kg",
			SKU:         "STR-BAR-20",
			Description: "Competition-grade 20kg barbell, 190k PSI shaft, dual knurl marks.",
			Price:       24999,
			Discount:    10,
			Category:    models.CategoryStrength,
			SubCategory: "Barbells",
			Stock:       25,
			Featured:    true,
		},
		{
			Name:        "Adjustable Dumbbell Pair 2.5-24kg",
			SKU:         "STR-DBL-24",
			Description: "Dial-select adjustable dumbbells, 2.5kg increments.",
			Price:       34999,
			Discount:    0,
			Category:    models.CategoryStrength,
			SubCategory: "Dumbbells",
			Stock:       40,
			Featured:    true,
		},
		{
			Name:        "Folding Treadmill T300",
			SKU:         "CRD-TRD-300",
			Description: "2.5HP continuous motor, 16km/h top speed, folds upright.",
			Price:       54999,
			Discount:    15,
			Category:    models.CategoryCardio,
			SubCategory: "Treadmill",
			Stock:       12,
		},
		{
			Name:        "Air Bike Pro",
			SKU:         "CRD-ABK-01",
			Description: "Fan-resistance bike with belt drive and interval console.",
			Price:       42999,
			Discount:    5,
			Category:    models.CategoryCardio,
			SubCategory: "Bikes",
			Stock:       18,
		},
		{
			Name:        "Kettlebell 16kg Cast Iron",
			SKU:         "FNC-KBL-16",
			Description: "Single-cast kettlebell with powder-coat finish.",
			Price:       3499,
			Discount:    0,
			Category:    models.CategoryFunctional,
			SubCategory: "Kettlebells",
			Stock:       60,
		},
		{
			Name:        "Resistance Band Set",
			SKU:         "ACC-BND-05",
			Description: "Five latex loop bands, 5-60kg combined resistance.",
			Price:       1999,
			Discount:    20,
			Category:    models.CategoryAccessories,
			SubCategory: "Bands",
			Stock:       120,
		},
		{
			Name:        "Lifting Belt Leather 10mm",
			SKU:         "ACC-BLT-10",
			Description: "10mm vegetable-tanned leather belt with lever buckle.",
			Price:       4999,
			Discount:    0,
			Category:    models.CategoryAccessories,
			SubCategory: "Belts",
			Stock:       8,
		},
	}

	for i := range catalog {
		catalog[i].RecalculateFinalPrice()
		if err := products.Create(ctx, &catalog[i]); err != nil {
			return err
		}
	}
	logger.Info("seed: catalog created", "count", len(catalog))
	return nil
}
