// Package settings provides the local key-value store.
//
// Values are opaque strings; callers own their serialization. The favourites
// package keeps its JSON blob here under entities.SettingKeyFavorites.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	value, found, err := repo.Get(ctx, "favorites")
package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookhouse/internal/database"
	"github.com/mrlokans/bookhouse/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key. Returns gorm.ErrRecordNotFound if absent.
func (r *Repository) GetSetting(ctx context.Context, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return &setting, nil
}

// Get returns the value stored under key and whether it was present.
func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	var rows []entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).Limit(1).Find(&rows).Error
	if err != nil {
		return "", false, database.ClassifyError(err)
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Value, true, nil
}

// Set creates or updates a setting.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	setting := entities.Setting{
		Key:   key,
		Value: value,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	return database.ClassifyError(err)
}

// Delete removes a setting by key. Deleting a missing key is not an error.
func (r *Repository) Delete(ctx context.Context, key string) error {
	err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.Setting{}).Error
	return database.ClassifyError(err)
}
