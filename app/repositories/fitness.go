package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/pkg/database"
)

// DietLogRepository persists daily calorie entries.
type DietLogRepository struct {
	col *mongo.Collection
}

func NewDietLogRepository() *DietLogRepository {
	return &DietLogRepository{col: database.Collection("diet_logs")}
}

// Upsert creates or overwrites the entry for (userID, date). The unique
// index on the pair makes the second log of a day an update, not a sibling.
func (r *DietLogRepository) Upsert(ctx context.Context, log *models.DietLog) error {
	now := time.Now().UTC()
	log.UpdatedAt = now
	res, err := r.col.UpdateOne(ctx,
		bson.M{"userId": log.UserID, "date": log.Date},
		bson.M{
			"$set":         bson.M{"calories": log.Calories, "notes": log.Notes, "updatedAt": now},
			"$setOnInsert": bson.M{"userId": log.UserID, "date": log.Date, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	if res.UpsertedID != nil {
		log.ID = res.UpsertedID.(primitive.ObjectID)
		log.CreatedAt = now
	}
	return nil
}

// FindByUser returns entries newest first, optionally bounded to [from, to]
// (inclusive, "YYYY-MM-DD"; empty bounds are open).
func (r *DietLogRepository) FindByUser(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.DietLog, error) {
	query := bson.M{"userId": userID}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := []models.DietLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// DeleteForUser removes the entry only when the caller owns it.
func (r *DietLogRepository) DeleteForUser(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// WorkoutLogRepository persists training sessions.
type WorkoutLogRepository struct {
	col *mongo.Collection
}

func NewWorkoutLogRepository() *WorkoutLogRepository {
	return &WorkoutLogRepository{col: database.Collection("workout_logs")}
}

func (r *WorkoutLogRepository) Insert(ctx context.Context, log *models.WorkoutLog) error {
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now
	if log.Exercises == nil {
		log.Exercises = []models.Exercise{}
	}
	res, err := r.col.InsertOne(ctx, log)
	if err != nil {
		return err
	}
	log.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *WorkoutLogRepository) FindByUser(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.WorkoutLog, error) {
	query := bson.M{"userId": userID}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := []models.WorkoutLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *WorkoutLogRepository) FindByIDForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.WorkoutLog, error) {
	var log models.WorkoutLog
	err := r.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&log)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *WorkoutLogRepository) Update(ctx context.Context, log *models.WorkoutLog) error {
	log.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": log.ID, "userId": log.UserID},
		bson.M{"$set": bson.M{
			"date":        log.Date,
			"workoutType": log.WorkoutType,
			"durationMin": log.DurationMin,
			"exercises":   log.Exercises,
			"notes":       log.Notes,
			"updatedAt":   log.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *WorkoutLogRepository) DeleteForUser(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
