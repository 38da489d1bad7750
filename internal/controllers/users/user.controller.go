package userController

import (
	"context"
	"errors"
	"time"

	"equiptrack/config"
	"equiptrack/internal/auth"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"
	"equiptrack/internal/repositories"
)

// ErrInvalidCredentials covers both unknown logins and wrong passwords
// so the response does not reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserController struct {
	userRepo repositories.UserRepository
	config   config.Config
	log      logger.Logger
}

func New(userRepo repositories.UserRepository, config config.Config) *UserController {
	return &UserController{
		userRepo: userRepo,
		config:   config,
		log:      logger.New("UserController"),
	}
}

// Login verifies credentials and issues a bearer token.
func (uc *UserController) Login(ctx context.Context, request *LoginRequest) (*User, string, error) {
	log := uc.log.Function("Login")

	user, err := uc.userRepo.GetByLogin(ctx, request.Login)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", log.Err("failed to get user for login", err)
	}

	if !auth.CheckPasswordHash(request.Password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	expiry := time.Duration(uc.config.AuthTokenExpiry) * time.Hour
	token, err := auth.GenerateToken(
		[]byte(uc.config.AuthJWTSecret),
		user.ID,
		user.Role,
		user.CompanyID,
		expiry,
	)
	if err != nil {
		return nil, "", log.Err("failed to generate token", err, "userID", user.ID)
	}

	return user, token, nil
}

func (uc *UserController) GetByID(ctx context.Context, id string) (*User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
