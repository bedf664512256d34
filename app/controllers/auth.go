package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/bind"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
)

// AuthController serves registration, login and the profile endpoints.
type AuthController struct {
	svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

type authPayload struct {
	User   *models.User        `json:"user"`
	Tokens *services.TokenPair `json:"tokens"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, tokens, err := c.svc.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, authPayload{User: user, Tokens: tokens})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, tokens, err := c.svc.Login(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, authPayload{User: user, Tokens: tokens})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	user, err := c.svc.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, user)
}

func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.UpdateProfileInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.svc.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, user)
}

func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.ChangePasswordInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.ChangePassword(r.Context(), userID, in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Password updated")
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in services.ResetPasswordInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.ResetPassword(r.Context(), in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Password reset successful")
}

func (c *AuthController) Addresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	addrs, err := c.svc.ListAddresses(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, addrs)
}

func (c *AuthController) AddAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.AddressInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	addrs, err := c.svc.AddAddress(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, addrs)
}

func (c *AuthController) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	addressID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	addrs, err := c.svc.RemoveAddress(r.Context(), userID, addressID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, addrs)
}

func (c *AuthController) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	addressID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	addrs, err := c.svc.SetDefaultAddress(r.Context(), userID, addressID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, addrs)
}
