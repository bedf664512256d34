package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/bind"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
)

// CartController serves the authenticated user's cart.
type CartController struct {
	svc *services.CartService
}

func NewCartController(svc *services.CartService) *CartController {
	return &CartController{svc: svc}
}

func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	cart, err := c.svc.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.AddToCartInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.svc.Add(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
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

	var in services.UpdateCartItemInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.svc.UpdateQuantity(r.Context(), userID, productID, in.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
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

	cart, err := c.svc.Remove(r.Context(), userID, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	if err := c.svc.Clear(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Cart cleared")
}
