package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/pkg/auth"
)

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users)

	u, tokens, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Asha Verma ",
		Email:    "Asha@Example.COM",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, "Asha Verma", u.Name)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, auth.CheckPassword(u.Password, "secret123"))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUsers())

	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), RegisterInput{Name: "B", Email: "A@X.com", Password: "secret456"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(newFakeUsers())
	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	u, tokens, err := svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEmpty(t, tokens.AccessToken)

	// Wrong password and unknown email fail identically.
	_, _, err = svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	users := newFakeUsers(&models.User{
		Email: "off@x.com", Password: hash, Role: models.RoleUser, IsActive: false,
	})

	svc := NewAuthService(users)
	_, _, err = svc.Login(context.Background(), LoginInput{Email: "off@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := NewAuthService(newFakeUsers())
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{AgeGroup: "25-34"})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Name)
	assert.Equal(t, "25-34", updated.AgeGroup)
}

func TestChangePassword(t *testing.T) {
	svc := NewAuthService(newFakeUsers())
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), u.ID, ChangePasswordInput{
		CurrentPassword: "wrong", NewPassword: "newsecret1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), u.ID, ChangePasswordInput{
		CurrentPassword: "secret123", NewPassword: "newsecret1",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "newsecret1"})
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	svc := NewAuthService(newFakeUsers())
	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), ResetPasswordInput{Email: "nobody@x.com", NewPassword: "fresh-pass1"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.ResetPassword(context.Background(), ResetPasswordInput{Email: "A@X.com", NewPassword: "fresh-pass1"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "fresh-pass1"})
	assert.NoError(t, err)
}

func testAddressInput(name string) AddressInput {
	return AddressInput{
		FullName: name,
		Email:    "home@example.com",
		Address:  "12 Gym Street",
		City:     "Pune",
		State:    "MH",
		Pincode:  "411001",
		Country:  "India",
		Phone:    "9999999999",
	}
}

func TestFirstSavedAddressBecomesDefault(t *testing.T) {
	svc := NewAuthService(newFakeUsers())
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	addrs, err := svc.AddAddress(context.Background(), u.ID, testAddressInput("Home"))
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.True(t, addrs[0].IsDefault)

	addrs, err = svc.AddAddress(context.Background(), u.ID, testAddressInput("Office"))
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.True(t, addrs[0].IsDefault)
	assert.False(t, addrs[1].IsDefault)
}

func TestSetDefaultAddressFlipsFlag(t *testing.T) {
	svc := NewAuthService(newFakeUsers())
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.AddAddress(context.Background(), u.ID, testAddressInput("Home"))
	require.NoError(t, err)
	addrs, err := svc.AddAddress(context.Background(), u.ID, testAddressInput("Office"))
	require.NoError(t, err)

	addrs, err = svc.SetDefaultAddress(context.Background(), u.ID, addrs[1].ID)
	require.NoError(t, err)
	assert.False(t, addrs[0].IsDefault)
	assert.True(t, addrs[1].IsDefault)
}

func TestRemoveAddress(t *testing.T) {
	svc := NewAuthService(newFakeUsers())
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	addrs, err := svc.AddAddress(context.Background(), u.ID, testAddressInput("Home"))
	require.NoError(t, err)

	_, err = svc.RemoveAddress(context.Background(), u.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)

	addrs, err = svc.RemoveAddress(context.Background(), u.ID, addrs[0].ID)
	require.NoError(t, err)
	assert.Empty(t, addrs)
}
