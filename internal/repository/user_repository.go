package repository

import (
	"context"
	"fmt"

	"proctor_backend/internal/model"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/database"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.DB)
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.conn(ctx).Create(user).Error; err != nil {
		return TranslateError(err)
	}
	return nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.conn(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return &user, nil
}

// Delete removes the user; role records and everything they own cascade.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.conn(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Roles(ctx context.Context, id uint) (model.Roles, error) {
	var roles model.Roles
	for _, role := range []model.UserRole{model.TestSetterRole, model.TestTakerRole, model.InvigilatorRole} {
		var count int64
		if err := r.conn(ctx).Table(model.RoleTable(role)).Where("id = ?", id).Count(&count).Error; err != nil {
			return roles, fmt.Errorf("count %s: %w", role, err)
		}
		switch role {
		case model.TestSetterRole:
			roles.TestSetter = count > 0
		case model.TestTakerRole:
			roles.TestTaker = count > 0
		case model.InvigilatorRole:
			roles.Invigilator = count > 0
		}
	}
	return roles, nil
}

func (r *UserRepository) AddRole(ctx context.Context, id uint, role model.UserRole) error {
	var record interface{}
	switch role {
	case model.TestSetterRole:
		record = &model.TestSetter{ID: id}
	case model.TestTakerRole:
		record = &model.TestTaker{ID: id}
	case model.InvigilatorRole:
		record = &model.Invigilator{ID: id}
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	if err := r.conn(ctx).Create(record).Error; err != nil {
		return TranslateError(err)
	}
	return nil
}
