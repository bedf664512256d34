package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/bind"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
	"github.com/shashiranjanraj/fitsetup/pkg/validate"
)

// OrderController serves checkout, order history and the admin order board.
type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.CheckoutInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if more := validate.Struct(&in.ShippingAddress); len(more) > 0 {
		if errs == nil {
			errs = map[string]string{}
		}
		for k, v := range more {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.svc.Checkout(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, order)
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orders, err := c.svc.ListForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	order, err := c.svc.GetForUser(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, order)
}

// AdminIndex lists every order (admin only).
func (c *OrderController) AdminIndex(w http.ResponseWriter, r *http.Request) {
	orders, err := c.svc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, orders)
}

type updateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order through its lifecycle (admin only).
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	var in updateStatusInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.svc.UpdateStatus(r.Context(), id, in.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, order)
}

// UpdatePayment sets the payment status directly (admin only).
func (c *OrderController) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	var in updateStatusInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.svc.UpdatePayment(r.Context(), id, in.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, order)
}
