package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pendulab/pendulum-backend/internal/apierr"
	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/repos"
	"github.com/pendulab/pendulum-backend/internal/types"
)

type CreateUserInput struct {
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Address *string  `json:"address"`
	Roles   []string `json:"roles"`
}

type UpdateUserInput struct {
	Email   *string   `json:"email"`
	Name    *string   `json:"name"`
	Address *string   `json:"address"`
	Roles   *[]string `json:"roles"`
}

// UserService is plain single-entity CRUD; deleting a user cascades to their
// orders (link rows go with the orders, result rows stay).
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error)
	GetUsers(ctx context.Context, params repos.ListParams) ([]*types.User, error)
	GetUser(ctx context.Context, userID int64) (*types.User, error)
	UpdateUser(ctx context.Context, userID int64, patch UpdateUserInput) (*types.User, error)
	DeleteUser(ctx context.Context, userID int64) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error) {
	if input.Email == "" {
		return nil, apierr.BadRequest("missing_email", errors.New("email is required"))
	}

	exists, err := us.userRepo.EmailExists(ctx, nil, input.Email)
	if err != nil {
		return nil, apierr.BadGateway("user_lookup_failed", err)
	}
	if exists {
		return nil, apierr.Conflict("email_in_use", fmt.Errorf("email %q already in use", input.Email))
	}

	now := time.Now().UTC()
	user := &types.User{
		Email:     input.Email,
		Name:      input.Name,
		Address:   input.Address,
		Roles:     datatypes.NewJSONSlice(input.Roles),
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := us.userRepo.Create(ctx, nil, user)
	if err != nil {
		us.log.Error("CreateUser failed", "error", err)
		return nil, apierr.Internal("user_create_failed", err)
	}

	us.log.Info("User created", "user_id", created.ID)
	return created, nil
}

func (us *userService) GetUsers(ctx context.Context, params repos.ListParams) ([]*types.User, error) {
	users, err := us.userRepo.List(ctx, nil, params)
	if err != nil {
		us.log.Error("GetUsers failed", "error", err)
		return nil, apierr.BadGateway("user_list_failed", err)
	}
	return users, nil
}

func (us *userService) GetUser(ctx context.Context, userID int64) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", userID))
		}
		return nil, apierr.BadGateway("user_lookup_failed", err)
	}
	return user, nil
}

func (us *userService) UpdateUser(ctx context.Context, userID int64, patch UpdateUserInput) (*types.User, error) {
	existing, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", userID))
		}
		return nil, apierr.BadGateway("user_lookup_failed", err)
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if patch.Email != nil && *patch.Email != existing.Email {
		exists, err := us.userRepo.EmailExists(ctx, nil, *patch.Email)
		if err != nil {
			return nil, apierr.BadGateway("user_lookup_failed", err)
		}
		if exists {
			return nil, apierr.Conflict("email_in_use", fmt.Errorf("email %q already in use", *patch.Email))
		}
		fields["email"] = *patch.Email
	}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Address != nil {
		fields["address"] = *patch.Address
	}
	if patch.Roles != nil {
		fields["roles"] = datatypes.NewJSONSlice(*patch.Roles)
	}

	if err := us.userRepo.UpdateFields(ctx, nil, userID, fields); err != nil {
		us.log.Error("UpdateUser failed", "user_id", userID, "error", err)
		return nil, apierr.BadGateway("user_update_failed", err)
	}

	updated, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.BadGateway("user_lookup_failed", err)
	}
	us.log.Info("User updated", "user_id", userID)
	return updated, nil
}

func (us *userService) DeleteUser(ctx context.Context, userID int64) (*types.User, error) {
	existing, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", userID))
		}
		return nil, apierr.BadGateway("user_lookup_failed", err)
	}

	if err := us.userRepo.Delete(ctx, nil, userID); err != nil {
		us.log.Error("DeleteUser failed", "user_id", userID, "error", err)
		return nil, apierr.BadGateway("user_delete_failed", err)
	}

	us.log.Info("User deleted", "user_id", userID)
	return existing, nil
}
