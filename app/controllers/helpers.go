// Package controllers holds the HTTP handlers. Controllers parse and validate
// input, call a service and translate its result into the JSON envelope; all
// business rules live in app/services.
package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/logger"
	"github.com/shashiranjanraj/fitsetup/pkg/middleware"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
)

// currentUserID reads the authenticated user id placed in the context by the
// auth middleware.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	hex, ok := middleware.UserIDFromCtx(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func isAdmin(r *http.Request) bool {
	role, _ := middleware.RoleFromCtx(r)
	return role == "admin"
}

// objectIDParam parses a hex ObjectID route parameter.
func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, name))
}

// objectIDFromHexOr404 parses a hex id from a request body, writing a 404
// when it is malformed.
func objectIDFromHexOr404(w http.ResponseWriter, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		response.NotFound(w)
	}
	return id, err
}

// writeServiceError maps service errors onto HTTP statuses. Unknown errors
// are logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *services.StockError
	switch {
	case errors.As(err, &stockErr):
		response.Error(w, http.StatusConflict, stockErr.Error())
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrAccountDisabled):
		response.Error(w, http.StatusForbidden, "Account is disabled")
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrEmailTaken):
		response.Error(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrAlreadyReviewed):
		response.Error(w, http.StatusConflict, "You have already reviewed this product")
	case errors.Is(err, services.ErrNotPurchased):
		response.Error(w, http.StatusForbidden, "Only verified purchasers can review this product")
	case errors.Is(err, services.ErrAlreadyWishlisted):
		response.Error(w, http.StatusConflict, "Product is already in your wishlist")
	case errors.Is(err, services.ErrEmptyCart):
		response.Error(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, services.ErrInvalidStatus):
		response.Error(w, http.StatusBadRequest, "Invalid status")
	default:
		logger.WithCtx(r.Context()).Error("unhandled service error", "error", err, "path", r.URL.Path)
		response.Error(w, http.StatusInternalServerError, "Something went wrong")
	}
}
