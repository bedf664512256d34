package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/pkg/collection"
	"github.com/shashiranjanraj/fitsetup/pkg/validate"
)

// DietStore is the slice of the diet log repository the service needs.
type DietStore interface {
	Upsert(ctx context.Context, log *models.DietLog) error
	FindByUser(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DietLog, error)
	DeleteForUser(ctx context.Context, id, userID primitive.ObjectID) error
}

// WorkoutStore is the slice of the workout log repository the service needs.
type WorkoutStore interface {
	Insert(ctx context.Context, log *models.WorkoutLog) error
	FindByUser(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.WorkoutLog, error)
	FindByIDForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.WorkoutLog, error)
	Update(ctx context.Context, log *models.WorkoutLog) error
	DeleteForUser(ctx context.Context, id, userID primitive.ObjectID) error
}

type DietLogInput struct {
	Date     string `json:"date" validate:"required,date"`
	Calories int    `json:"calories" validate:"required,gte=0,lte=20000"`
	Notes    string `json:"notes" validate:"nullable,max=500"`
}

type ExerciseInput struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Sets   int     `json:"sets" validate:"required,gte=1"`
	Reps   int     `json:"reps" validate:"required,gte=1"`
	Weight float64 `json:"weight" validate:"gte=0"`
}

type WorkoutLogInput struct {
	Date        string          `json:"date" validate:"required,date"`
	WorkoutType string          `json:"workoutType" validate:"required,max=50"`
	DurationMin int             `json:"durationMin" validate:"gte=0,lte=1440"`
	Exercises   []ExerciseInput `json:"exercises" validate:"required"`
	Notes       string          `json:"notes" validate:"nullable,max=500"`
}

// ProgressSummary aggregates diet and workout logs over a date range.
type ProgressSummary struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	DaysLogged      int     `json:"daysLogged"`
	TotalCalories   int     `json:"totalCalories"`
	AvgCaloriesDay  float64 `json:"avgCaloriesPerDay"`
	WorkoutSessions int     `json:"workoutSessions"`
	TotalMinutes    int     `json:"totalMinutes"`
}

// FitnessService manages diet logs, workout logs and the progress summary.
type FitnessService struct {
	diet     DietStore
	workouts WorkoutStore
}

func NewFitnessService(diet DietStore, workouts WorkoutStore) *FitnessService {
	return &FitnessService{diet: diet, workouts: workouts}
}

// LogDiet creates or replaces the calorie entry for the given day.
func (s *FitnessService) LogDiet(ctx context.Context, userID primitive.ObjectID, in DietLogInput) (*models.DietLog, error) {
	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	log := &models.DietLog{
		UserID:   userID,
		Date:     date,
		Calories: in.Calories,
		Notes:    in.Notes,
	}
	if err := s.diet.Upsert(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *FitnessService) ListDiet(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DietLog, error) {
	return s.diet.FindByUser(ctx, userID, from, to)
}

func (s *FitnessService) DeleteDiet(ctx context.Context, userID, id primitive.ObjectID) error {
	err := s.diet.DeleteForUser(ctx, id, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *FitnessService) LogWorkout(ctx context.Context, userID primitive.ObjectID, in WorkoutLogInput) (*models.WorkoutLog, error) {
	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	log := &models.WorkoutLog{
		UserID:      userID,
		Date:        date,
		WorkoutType: in.WorkoutType,
		DurationMin: in.DurationMin,
		Exercises:   toExercises(in.Exercises),
		Notes:       in.Notes,
	}
	if err := s.workouts.Insert(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *FitnessService) ListWorkouts(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.WorkoutLog, error) {
	return s.workouts.FindByUser(ctx, userID, from, to)
}

// UpdateWorkout rewrites the caller's own session.
func (s *FitnessService) UpdateWorkout(ctx context.Context, userID, id primitive.ObjectID, in WorkoutLogInput) (*models.WorkoutLog, error) {
	log, err := s.workouts.FindByIDForUser(ctx, id, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	log.Date = date
	log.WorkoutType = in.WorkoutType
	log.DurationMin = in.DurationMin
	log.Exercises = toExercises(in.Exercises)
	log.Notes = in.Notes

	if err := s.workouts.Update(ctx, log); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

func (s *FitnessService) DeleteWorkout(ctx context.Context, userID, id primitive.ObjectID) error {
	err := s.workouts.DeleteForUser(ctx, id, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Progress summarizes both trackers over [from, to].
func (s *FitnessService) Progress(ctx context.Context, userID primitive.ObjectID, from, to string) (*ProgressSummary, error) {
	dietLogs, err := s.diet.FindByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	workoutLogs, err := s.workouts.FindByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	totalCalories := int(collection.Sum(dietLogs, func(d models.DietLog) float64 {
		return float64(d.Calories)
	}))
	totalMinutes := int(collection.Sum(workoutLogs, func(w models.WorkoutLog) float64 {
		return float64(w.DurationMin)
	}))

	summary := &ProgressSummary{
		From:            from,
		To:              to,
		DaysLogged:      len(dietLogs),
		TotalCalories:   totalCalories,
		WorkoutSessions: len(workoutLogs),
		TotalMinutes:    totalMinutes,
	}
	if len(dietLogs) > 0 {
		summary.AvgCaloriesDay = float64(totalCalories) / float64(len(dietLogs))
	}
	return summary, nil
}

func toExercises(in []ExerciseInput) []models.Exercise {
	return collection.Map(in, func(e ExerciseInput) models.Exercise {
		return models.Exercise{Name: e.Name, Sets: e.Sets, Reps: e.Reps, Weight: e.Weight}
	})
}

// normalizeDate canonicalizes to "YYYY-MM-DD" so the per-day unique index
// compares consistently. It accepts every layout the "date" validation rule
// accepts; a date that passed binding never fails here.
func normalizeDate(s string) (string, error) {
	t, err := validate.ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}
