package repositories

import (
	"context"
	"errors"
	"fmt"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/messages"

	"gorm.io/gorm"
)

// OverrideRepository is the public interface for handling wager overrides.
type OverrideRepository interface {
	CreateOverride(ctx context.Context, override *models.WagerOverride) error
	GetActiveOverrides(ctx context.Context) ([]models.WagerOverride, error)
	DeactivateOverrides(ctx context.Context, ids []uint) error
}

// overrideRepository is the repository instance.
type overrideRepository struct {
	db *gorm.DB
}

// NewOverrideRepository creates the override repository.
func NewOverrideRepository(db *gorm.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

// CreateOverride inserts an admin-authored override. At most one active
// override may exist per username, enforced with a pre-insert existence check.
func (or *overrideRepository) CreateOverride(ctx context.Context, override *models.WagerOverride) error {
	var existing models.WagerOverride
	err := or.db.WithContext(ctx).
		Where("username = ? AND active = ?", override.Username, true).
		First(&existing).Error

	if err == nil {
		return errors.New(messages.OverrideAlreadyThere)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("couldn't check for an existing override: %w", err)
	}

	override.Active = true
	if err := or.db.WithContext(ctx).Create(override).Error; err != nil {
		return fmt.Errorf("couldn't create the override: %w", err)
	}
	return nil
}

// GetActiveOverrides returns every override still flagged active, expired
// ones included so the adjustment pass can deactivate them lazily.
func (or *overrideRepository) GetActiveOverrides(ctx context.Context) ([]models.WagerOverride, error) {
	var overrides []models.WagerOverride
	if err := or.db.WithContext(ctx).Where("active = ?", true).Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("couldn't load the active overrides: %w", err)
	}
	return overrides, nil
}

// DeactivateOverrides soft-deletes overrides by flipping the active flag.
// The pipeline never hard-deletes override rows.
func (or *overrideRepository) DeactivateOverrides(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	return or.db.WithContext(ctx).
		Model(&models.WagerOverride{}).
		Where("id IN (?)", ids).
		Update("active", false).Error
}
