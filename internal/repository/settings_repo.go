package repository

import (
	"errors"

	"github.com/JayRamoliya/merch-master-pro/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the single settings row, creating the default one if the
	// table is empty.
	Get() (*model.ShopSettings, error)
	Update(settings *model.ShopSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

func (r *settingsRepo) Get() (*model.ShopSettings, error) {
	var settings model.ShopSettings
	err := r.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := model.DefaultShopSettings()
		if err := r.db.Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) Update(settings *model.ShopSettings) error {
	return r.db.Save(settings).Error
}
