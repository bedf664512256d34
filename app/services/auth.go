package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/pkg/auth"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	AddAddress(ctx context.Context, id primitive.ObjectID, addr models.SavedAddress) error
	RemoveAddress(ctx context.Context, id, addressID primitive.ObjectID) error
	SetDefaultAddress(ctx context.Context, id, addressID primitive.ObjectID) error
}

type RegisterInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Phone           string `json:"phone" validate:"nullable,max=20"`
	AgeGroup        string `json:"ageGroup" validate:"nullable,max=20"`
	ExperienceLevel string `json:"experienceLevel" validate:"nullable,max=30"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name            string `json:"name" validate:"nullable,max=100"`
	Phone           string `json:"phone" validate:"nullable,max=20"`
	AgeGroup        string `json:"ageGroup" validate:"nullable,max=20"`
	ExperienceLevel string `json:"experienceLevel" validate:"nullable,max=30"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type AddressInput struct {
	FullName  string `json:"fullName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"required,max=500"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	Pincode   string `json:"pincode" validate:"required,max=20"`
	Country   string `json:"country" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=20"`
	IsDefault bool   `json:"isDefault"`
}

// TokenPair is issued on register and login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService handles registration, login and profile management.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account and signs a token pair. Emails are normalized
// to lower case so "A@x.com" and "a@x.com" collide on the unique index.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, *TokenPair, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	u := &models.User{
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Password:        hash,
		Role:            models.RoleUser,
		Phone:           in.Phone,
		AgeGroup:        in.AgeGroup,
		ExperienceLevel: in.ExperienceLevel,
		IsActive:        true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Login verifies credentials. A wrong email and a wrong password return the
// same error so the endpoint does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, *TokenPair, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(u.Password, in.Password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// UpdateProfile writes only the fields the caller actually sent.
func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in UpdateProfileInput) (*models.User, error) {
	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = strings.TrimSpace(in.Name)
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	if in.AgeGroup != "" {
		fields["ageGroup"] = in.AgeGroup
	}
	if in.ExperienceLevel != "" {
		fields["experienceLevel"] = in.ExperienceLevel
	}
	if len(fields) > 0 {
		if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}
	return s.Profile(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, in ChangePasswordInput) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !auth.CheckPassword(u.Password, in.CurrentPassword) {
		return ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// ResetPassword replaces the password for the account behind the email.
// Callers are expected to rate limit this endpoint; it is unauthenticated.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

func (s *AuthService) ListAddresses(ctx context.Context, userID primitive.ObjectID) ([]models.SavedAddress, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Addresses == nil {
		return []models.SavedAddress{}, nil
	}
	return u.Addresses, nil
}

// AddAddress saves a shipping address on the account. The first saved
// address becomes the default regardless of the flag sent.
func (s *AuthService) AddAddress(ctx context.Context, userID primitive.ObjectID, in AddressInput) ([]models.SavedAddress, error) {
	existing, err := s.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr := models.SavedAddress{
		ID: primitive.NewObjectID(),
		ShippingAddress: models.ShippingAddress{
			FullName: in.FullName,
			Email:    in.Email,
			Address:  in.Address,
			City:     in.City,
			State:    in.State,
			Pincode:  in.Pincode,
			Country:  in.Country,
			Phone:    in.Phone,
		},
		IsDefault: in.IsDefault || len(existing) == 0,
	}
	if err := s.users.AddAddress(ctx, userID, addr); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.ListAddresses(ctx, userID)
}

func (s *AuthService) RemoveAddress(ctx context.Context, userID, addressID primitive.ObjectID) ([]models.SavedAddress, error) {
	if err := s.users.RemoveAddress(ctx, userID, addressID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.ListAddresses(ctx, userID)
}

func (s *AuthService) SetDefaultAddress(ctx context.Context, userID, addressID primitive.ObjectID) ([]models.SavedAddress, error) {
	if err := s.users.SetDefaultAddress(ctx, userID, addressID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.ListAddresses(ctx, userID)
}

func (s *AuthService) issueTokens(u *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
