package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"miniinventory/internal/model"
)

// UserRepository defines credential persistence operations.
type UserRepository interface {
	FindByCredentials(ctx context.Context, username, passwordHash string) (*model.User, error)
	CreateIfAbsent(ctx context.Context, user *model.User) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByCredentials(ctx context.Context, username, passwordHash string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("username = ? AND password_hash = ?", username, passwordHash).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateIfAbsent inserts user unless its id or username already exists.
// It reports whether a row was written.
func (r *userRepository) CreateIfAbsent(ctx context.Context, user *model.User) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
