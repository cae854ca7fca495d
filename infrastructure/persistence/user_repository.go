package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/infrastructure/logger"
)

// UserRepository is the GORM implementation of IUser over the primary
// relational database.
type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) repository.IUser { return &UserRepository{db} }

// EnsureUserSchema migrates the users table.
func EnsureUserSchema(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{})
}

func (r *UserRepository) GetById(ctx context.Context, id int) (model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		logger.GetLogger().WithField("error", err).Error("query user by id failed")
		return u, err
	}
	return u, nil
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&u).Error; err != nil {
		logger.GetLogger().WithField("error", err).Error("query user by username failed")
		return u, err
	}
	return u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":     err,
			"user_name": user.UserName,
		}).Error("create user failed")
		return err
	}
	return nil
}

// SetSubscription replaces the user's subscription window atomically. The
// three columns always change together so a reader never observes a window
// mixing old and new values.
func (r *UserRepository) SetSubscription(ctx context.Context, userName, planID string, start, end time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_name = ?", userName).
		Updates(map[string]interface{}{
			"subscription_plan":  planID,
			"subscription_start": start,
			"subscription_end":   end,
		})
	if res.Error != nil {
		logger.GetLogger().WithField("error", res.Error).Error("set subscription failed")
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
