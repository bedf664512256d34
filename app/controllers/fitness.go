package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/bind"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
)

// FitnessController serves the diet, workout and progress endpoints.
type FitnessController struct {
	svc *services.FitnessService
}

func NewFitnessController(svc *services.FitnessService) *FitnessController {
	return &FitnessController{svc: svc}
}

func (c *FitnessController) LogDiet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.DietLogInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	log, err := c.svc.LogDiet(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, log)
}

func (c *FitnessController) ListDiet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	logs, err := c.svc.ListDiet(r.Context(), userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, logs)
}

func (c *FitnessController) DeleteDiet(w http.ResponseWriter, r *http.Request) {
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
	if err := c.svc.DeleteDiet(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Diet log deleted")
}

func (c *FitnessController) LogWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.WorkoutLogInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	log, err := c.svc.LogWorkout(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, log)
}

func (c *FitnessController) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	logs, err := c.svc.ListWorkouts(r.Context(), userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, logs)
}

func (c *FitnessController) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
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

	var in services.WorkoutLogInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	log, err := c.svc.UpdateWorkout(r.Context(), userID, id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, log)
}

func (c *FitnessController) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
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
	if err := c.svc.DeleteWorkout(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Workout log deleted")
}

func (c *FitnessController) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	summary, err := c.svc.Progress(r.Context(), userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, summary)
}
