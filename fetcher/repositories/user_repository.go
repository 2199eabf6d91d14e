package repositories

import (
	"context"
	"fmt"
	"goatedvips/pkg/database/models"

	"gorm.io/gorm"
)

// UserRepository is the public interface for the mirrored local user profiles.
type UserRepository interface {
	GetUsersByGoatedUIDs(ctx context.Context, uids []string) (map[string]*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
}

// userRepository is the repository instance.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetUsersByGoatedUIDs returns a map of users by the external uid.
func (ur *userRepository) GetUsersByGoatedUIDs(ctx context.Context, uids []string) (map[string]*models.User, error) {
	if len(uids) == 0 {
		return map[string]*models.User{}, nil
	}

	var users []models.User
	if err := ur.db.WithContext(ctx).Where("goated_uid IN (?)", uids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("couldn't load the users: %w", err)
	}

	// Convert to make the reconcile loop fast.
	usersMap := make(map[string]*models.User, len(users))
	for i := range users {
		usersMap[users[i].GoatedUID] = &users[i]
	}
	return usersMap, nil
}

// CreateUser inserts a new local profile.
func (ur *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := ur.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("couldn't create user %s: %w", user.GoatedUID, err)
	}
	return nil
}

// SaveUser persists an updated profile.
func (ur *userRepository) SaveUser(ctx context.Context, user *models.User) error {
	if err := ur.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("couldn't save user %s: %w", user.GoatedUID, err)
	}
	return nil
}
