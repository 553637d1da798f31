package service

import (
	"context"

	"proctor_backend/internal/model"
	"proctor_backend/internal/repository"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/logger"

	"go.uber.org/zap"
)

// UserService 处理用户资料与角色
type UserService struct {
	Users repository.UserStore
}

func NewUserService(users repository.UserStore) *UserService {
	return &UserService{Users: users}
}

// swagger:model UserDetails
type UserDetails struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	model.Roles
}

func (s *UserService) Details(ctx context.Context, user *model.User) (*UserDetails, error) {
	roles, err := s.Users.Roles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &UserDetails{
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Roles:    roles,
	}, nil
}

func (s *UserService) Roles(ctx context.Context, userID uint) (model.Roles, error) {
	return s.Users.Roles(ctx, userID)
}

var alreadyHeld = map[model.UserRole]error{
	model.TestSetterRole:  util.ErrAlreadyTestSetter,
	model.TestTakerRole:   util.ErrAlreadyTestTaker,
	model.InvigilatorRole: util.ErrAlreadyInvigilator,
}

// AssumeRole is a one-time upgrade; holding the role already is an error.
func (s *UserService) AssumeRole(ctx context.Context, userID uint, role model.UserRole) error {
	roles, err := s.Users.Roles(ctx, userID)
	if err != nil {
		return err
	}
	if roles.Has(role) {
		return alreadyHeld[role]
	}
	if err := s.Users.AddRole(ctx, userID, role); err != nil {
		return err
	}
	logger.Log.Info("Role assumed", zap.Uint("user_id", userID), zap.String("role", string(role)))
	return nil
}

// DeleteAccount removes the user together with every role record and
// everything those records own.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	logger.Log.Info("Account deleted", zap.Uint("user_id", userID))
	return nil
}
