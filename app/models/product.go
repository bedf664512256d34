package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories. SubCategory is free text underneath these
// (e.g. Category "Cardio" → SubCategory "Treadmill").
const (
	CategoryStrength    = "Strength"
	CategoryCardio      = "Cardio"
	CategoryFunctional  = "Functional"
	CategoryAccessories = "Accessories"
	CategoryOther       = "Other"
)

// Categories lists every valid product category.
var Categories = []string{
	CategoryStrength, CategoryCardio, CategoryFunctional,
	CategoryAccessories, CategoryOther,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product is a catalog entry. FinalPrice, Rating and NumReviews are derived
// fields cached on the document: FinalPrice is recomputed on every save that
// touches price or discount, Rating/NumReviews on every review mutation.
type Product struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name        string                 `bson:"name" json:"name"`
	SKU         string                 `bson:"sku,omitempty" json:"sku,omitempty"`
	Description string                 `bson:"description" json:"description"`
	ShortDesc   string                 `bson:"shortDesc,omitempty" json:"shortDesc,omitempty"`
	Price       float64                `bson:"price" json:"price"`
	Discount    float64                `bson:"discount" json:"discount"`
	FinalPrice  float64                `bson:"finalPrice" json:"finalPrice"`
	Category    string                 `bson:"category" json:"category"`
	SubCategory string                 `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Stock       int                    `bson:"stock" json:"stock"`
	Images      []string               `bson:"images" json:"images"`
	Featured    bool                   `bson:"featured" json:"featured"`
	Rating      float64                `bson:"rating" json:"rating"`
	NumReviews  int                    `bson:"numReviews" json:"numReviews"`
	Specs       map[string]interface{} `bson:"specs,omitempty" json:"specs,omitempty"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// RecalculateFinalPrice refreshes the cached FinalPrice from Price and
// Discount. Discount 0 leaves FinalPrice equal to Price.
func (p *Product) RecalculateFinalPrice() {
	if p.Discount > 0 {
		p.FinalPrice = p.Price - (p.Price * p.Discount / 100)
	} else {
		p.FinalPrice = p.Price
	}
}

// FirstImage returns the first gallery image, or "" when the product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
