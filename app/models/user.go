package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account document. Password holds a bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	Role            string             `bson:"role" json:"role"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	AgeGroup        string             `bson:"ageGroup,omitempty" json:"ageGroup,omitempty"`
	ExperienceLevel string             `bson:"experienceLevel,omitempty" json:"experienceLevel,omitempty"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	Addresses       []SavedAddress     `bson:"addresses,omitempty" json:"addresses,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SavedAddress is a shipping address stored on the account for reuse at
// checkout. At most one address per user is the default.
type SavedAddress struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	ShippingAddress `bson:",inline"`
	IsDefault       bool `bson:"isDefault" json:"isDefault"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// DefaultAddress returns the default saved address, or nil when none is set.
func (u *User) DefaultAddress() *SavedAddress {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}
