package repository

import (
	"context"
	"fmt"

	"lace-store/internal/domain"
)

type settingsRepository struct {
	telegram Store[domain.TelegramSettings]
}

// NewSettingsRepository keeps the Telegram settings as the first record of a collection
func NewSettingsRepository(telegram Store[domain.TelegramSettings]) SettingsRepository {
	return &settingsRepository{telegram: telegram}
}

func (r *settingsRepository) GetTelegram(ctx context.Context) (*domain.TelegramSettings, error) {
	all, err := r.telegram.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load telegram settings: %w", err)
	}
	if len(all) == 0 {
		return &domain.TelegramSettings{Chats: []domain.TelegramChat{}}, nil
	}
	settings := all[0]
	return &settings, nil
}

func (r *settingsRepository) SaveTelegram(ctx context.Context, settings *domain.TelegramSettings) error {
	if settings.ID == "" {
		current, err := r.GetTelegram(ctx)
		if err != nil {
			return err
		}
		settings.ID = current.ID
	}

	if settings.ID == "" {
		if err := r.telegram.Create(ctx, settings); err != nil {
			return fmt.Errorf("failed to create telegram settings: %w", err)
		}
		return nil
	}

	if err := r.telegram.Update(ctx, settings); err != nil {
		return fmt.Errorf("failed to update telegram settings: %w", err)
	}
	return nil
}
