package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/bind"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
)

// WishlistController serves the authenticated user's wishlist.
type WishlistController struct {
	svc *services.WishlistService
}

func NewWishlistController(svc *services.WishlistService) *WishlistController {
	return &WishlistController{svc: svc}
}

func (c *WishlistController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	entries, err := c.svc.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, entries)
}

type wishlistAddInput struct {
	ProductID string `json:"productId" validate:"required"`
}

func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in wishlistAddInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	productID, err := objectIDFromHexOr404(w, in.ProductID)
	if err != nil {
		return
	}
	if err := c.svc.Add(r.Context(), userID, productID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Added to wishlist")
}

func (c *WishlistController) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	productID, err := objectIDParam(r, "productId")
	if err != nil {
		response.NotFound(w)
		return
	}

	in, err := c.svc.Contains(r.Context(), userID, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"inWishlist": in})
}

func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	productID, err := objectIDParam(r, "productId")
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := c.svc.Remove(r.Context(), userID, productID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Removed from wishlist")
}

func (c *WishlistController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	if err := c.svc.Clear(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Wishlist cleared")
}
