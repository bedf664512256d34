package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/bind"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
)

// AdminController serves the dashboard and user management (admin only).
type AdminController struct {
	svc *services.AdminService
}

func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{svc: svc}
}

func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, stats)
}

func (c *AdminController) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.LowStockProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, products)
}

func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.svc.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, users)
}

func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	targetID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := c.svc.DeleteUser(r.Context(), actorID, targetID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "User deleted")
}

type setRoleInput struct {
	Role string `json:"role" validate:"required,in=user,admin"`
}

func (c *AdminController) SetUserRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	targetID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	var in setRoleInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.svc.SetUserRole(r.Context(), actorID, targetID, in.Role); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Role updated")
}
