package repository

import (
	"context"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersRepo struct {
	Users *mongo.Collection
}

// Retrieves the MongoDB collection for users
func GetUsersRepo(client *mongo.Client) *UsersRepo {
	dbName := os.Getenv("MONGO_DB")
	return &UsersRepo{
		Users: client.Database(dbName).Collection(os.Getenv("USERS_COLLECTION")),
	}
}

// AddUser inserts a new user row
func (r *UsersRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if _, err := r.Users.InsertOne(ctx, user); err != nil {
		utils.TrackError("database", "user_creation_failed")
		return err
	}
	return nil
}

// FindUserByUsername looks a user up by username; nil when absent.
func (r *UsersRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.Users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, err
	}
	return &user, nil
}

// FindUser looks a user up by id; nil when absent.
func (r *UsersRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.Users.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, err
	}
	return &user, nil
}
