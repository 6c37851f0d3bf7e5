package repository

import (
	"context"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfilesRepo struct {
	Profiles  *mongo.Collection
	Diagnosis *mongo.Collection
}

// Retrieves MongoDB collections for profiles and diagnosis answers
func GetProfilesRepo(client *mongo.Client) *ProfilesRepo {
	dbName := os.Getenv("MONGO_DB")
	db := client.Database(dbName)
	return &ProfilesRepo{
		Profiles:  db.Collection(os.Getenv("PROFILES_COLLECTION")),
		Diagnosis: db.Collection(os.Getenv("DIAGNOSIS_COLLECTION")),
	}
}

// Get returns the user's profile, creating one with defaults on first access.
func (r *ProfilesRepo) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	timer := utils.TrackDBOperation("find", "profiles")
	defer timer.ObserveDuration()

	var profile model.UserProfile
	err := r.Profiles.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err == nil {
		return &profile, nil
	}
	if err != mongo.ErrNoDocuments {
		utils.TrackError("database", "profile_lookup_error")
		return nil, err
	}

	profile = model.UserProfile{
		UserID:           userID,
		AutoSort:         true,
		ArchiveAfterDays: model.DefaultArchiveAfterDays,
	}
	if _, err := r.Profiles.InsertOne(ctx, &profile); err != nil {
		utils.TrackError("database", "profile_creation_failed")
		return nil, err
	}
	return &profile, nil
}

// Update upserts the whole profile document
func (r *ProfilesRepo) Update(ctx context.Context, profile *model.UserProfile) error {
	timer := utils.TrackDBOperation("update", "profiles")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": profile.UserID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.Profiles.ReplaceOne(ctx, filter, profile, opts); err != nil {
		utils.TrackError("database", "profile_update_failed")
		return err
	}
	return nil
}

// ReplaceDiagnosis swaps the user's stored quiz answers for a fresh set.
func (r *ProfilesRepo) ReplaceDiagnosis(ctx context.Context, userID string, answers []model.DiagnosisAnswer) error {
	timer := utils.TrackDBOperation("replace", "diagnosis_answers")
	defer timer.ObserveDuration()

	if _, err := r.Diagnosis.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		utils.TrackError("database", "diagnosis_clear_failed")
		return err
	}

	docs := make([]interface{}, len(answers))
	for i, a := range answers {
		a.UserID = userID
		docs[i] = a
	}
	if _, err := r.Diagnosis.InsertMany(ctx, docs); err != nil {
		utils.TrackError("database", "diagnosis_insert_failed")
		return err
	}
	return nil
}
