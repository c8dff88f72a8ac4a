package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/peopleops/hr-management/internal"
	userDatamodel "github.com/peopleops/hr-management/internal/core/datamodel/user"
	"github.com/peopleops/hr-management/internal/user"
)

// UserRepository implements the user.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := user.ToDataModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	*u = *user.FromDataModel(model)
	return nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	var models []*userDatamodel.User
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return fromModels(models), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var model userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model userDatamodel.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&userDatamodel.User{}).Error
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) Query(ctx context.Context, criteria map[string]interface{}) ([]*user.User, error) {
	var models []*userDatamodel.User
	if err := r.db.WithContext(ctx).Where(criteria).Find(&models).Error; err != nil {
		return nil, err
	}
	return fromModels(models), nil
}

func fromModels(models []*userDatamodel.User) []*user.User {
	users := make([]*user.User, len(models))
	for i, m := range models {
		users[i] = user.FromDataModel(m)
	}
	return users
}
