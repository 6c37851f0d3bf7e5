package usecase

import (
	"context"
	"errors"

	"main/model"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
)

type UserStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindUser(ctx context.Context, userID string) (*model.User, error)
}

type UserService struct {
	users UserStore
	clock utils.Clock
}

func NewUserService(users UserStore, clock utils.Clock) *UserService {
	return &UserService{users: users, clock: clock}
}

// CreateUser registers a new account with a hashed password.
func (svc *UserService) CreateUser(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := svc.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("username already exists")
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    uuid.New().String(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: svc.clock.Now(),
	}
	if err := svc.users.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the user; nil without
// error means the username or password did not match.
func (svc *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := svc.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		return nil, nil
	}
	return user, nil
}
