package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DietLog records calories for one calendar day. Date is stored as "YYYY-MM-DD"
// and the pair (userId, date) is unique, so logging twice for the same day
// overwrites the earlier entry.
type DietLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      string             `bson:"date" json:"date"`
	Calories  int                `bson:"calories" json:"calories"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Exercise is one movement inside a workout session.
type Exercise struct {
	Name   string  `bson:"name" json:"name"`
	Sets   int     `bson:"sets" json:"sets"`
	Reps   int     `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight,omitempty" json:"weight,omitempty"`
}

// WorkoutLog is one training session. Unlike diet logs, multiple sessions per
// day are allowed.
type WorkoutLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Date        string             `bson:"date" json:"date"`
	WorkoutType string             `bson:"workoutType" json:"workoutType"`
	DurationMin int                `bson:"durationMin,omitempty" json:"durationMin,omitempty"`
	Exercises   []Exercise         `bson:"exercises" json:"exercises"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
