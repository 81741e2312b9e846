package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aliskhannn/learning-galaxy/internal/domain/entities"
	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

// SettingsKey is the store key of the settings blob.
const SettingsKey = "learning-galaxy-settings"

type SettingsRepository struct {
	store storage.Store
}

func NewSettingsRepository(store storage.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get loads the saved settings merged over the defaults.
// Missing settings are not an error: the defaults are returned.
func (r *SettingsRepository) Get(ctx context.Context) (*entities.Settings, error) {
	settings := entities.NewSettings()

	raw, err := r.store.Get(ctx, SettingsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return settings, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	// Unmarshal into the defaults so absent keys keep their default values.
	if err := json.Unmarshal([]byte(raw), settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	if settings.GameSheetURLs == nil {
		settings.GameSheetURLs = map[string]string{}
	}
	if settings.EnabledGames == nil {
		settings.EnabledGames = map[string]bool{}
	}

	return settings, nil
}

// Save replaces the stored settings.
func (r *SettingsRepository) Save(ctx context.Context, settings *entities.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := r.store.Set(ctx, SettingsKey, string(raw)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
