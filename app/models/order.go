package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle statuses. New orders start in Processing.
const (
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Payment methods and statuses. Card and UPI payments are simulated and
// marked Paid immediately; COD stays Pending until delivery.
const (
	PaymentCOD  = "COD"
	PaymentCard = "Card"
	PaymentUPI  = "UPI"

	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

// ShippingAddress is embedded on the order, not linked to the user document,
// so later profile edits never rewrite shipped orders.
type ShippingAddress struct {
	FullName string `bson:"fullName" json:"fullName" validate:"required,max=100"`
	Email    string `bson:"email" json:"email" validate:"required,email"`
	Address  string `bson:"address" json:"address" validate:"required,max=300"`
	City     string `bson:"city" json:"city" validate:"required,max=100"`
	State    string `bson:"state" json:"state" validate:"required,max=100"`
	Pincode  string `bson:"pincode" json:"pincode" validate:"required,max=12"`
	Country  string `bson:"country" json:"country" validate:"required,max=100"`
	Phone    string `bson:"phone" json:"phone" validate:"required,max=20"`
}

// OrderItem is a priced line frozen at checkout time.
type OrderItem struct {
	ProductID  primitive.ObjectID `bson:"productId" json:"productId"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	FinalPrice float64            `bson:"finalPrice" json:"finalPrice"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Quantity   int                `bson:"quantity" json:"quantity"`
}

// Order is a placed order. TotalAmount is always recomputed server side from
// the item lines, never trusted from the client.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus     string             `bson:"orderStatus" json:"orderStatus"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Total recomputes the amount from the item lines.
func (o *Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.FinalPrice * float64(it.Quantity)
	}
	return total
}
