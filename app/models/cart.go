package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a snapshot of a product taken when it was added to the cart.
// Name, Price, FinalPrice and Image may drift from the live product; they are
// re-validated against the catalog at checkout.
type CartItem struct {
	ProductID  primitive.ObjectID `bson:"productId" json:"productId"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	FinalPrice float64            `bson:"finalPrice" json:"finalPrice"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Stock      int                `bson:"stock" json:"stock"`
}

// Cart holds one document per user, created lazily on first read or add.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Subtotal sums finalPrice x quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.FinalPrice * float64(it.Quantity)
	}
	return total
}

// ItemCount sums quantities over all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
