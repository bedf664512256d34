package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/bind"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
)

// ReviewController serves product reviews.
type ReviewController struct {
	svc  *services.ReviewService
	auth *services.AuthService
}

func NewReviewController(svc *services.ReviewService, auth *services.AuthService) *ReviewController {
	return &ReviewController{svc: svc, auth: auth}
}

// Index lists a product's reviews (public).
func (c *ReviewController) Index(w http.ResponseWriter, r *http.Request) {
	productID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}
	reviews, err := c.svc.ListForProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, reviews)
}

// Eligibility tells the storefront whether to render the review form.
func (c *ReviewController) Eligibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	productID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	elig, err := c.svc.Eligibility(r.Context(), userID, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, elig)
}

func (c *ReviewController) Store(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	productID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	var in services.CreateReviewInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.auth.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	review, err := c.svc.Create(r.Context(), userID, user.Name, productID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, review)
}

func (c *ReviewController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	reviewID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	var in services.CreateReviewInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.svc.Update(r.Context(), userID, reviewID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, review)
}

func (c *ReviewController) Destroy(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	reviewID, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := c.svc.Delete(r.Context(), userID, isAdmin(r), reviewID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Review deleted")
}
