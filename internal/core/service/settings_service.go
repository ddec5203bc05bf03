package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// SettingsService manages per-user preferences.
type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Preferences returns the stored settings, creating the defaults on first read.
func (s *SettingsService) Preferences(ctx context.Context, userID string) (*domain.Settings, error) {
	settings, err := s.repo.Find(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		return nil, err
	}

	settings = domain.DefaultSettings(userID, domain.DefaultAccentColor, time.Now().UTC())
	if err := s.repo.Create(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, userID, accentColor string, emailNotifications bool) (*domain.Settings, error) {
	if !slices.Contains(domain.AccentColors, accentColor) {
		return nil, domain.NewValidationError("accentColor", "Invalid accent color")
	}

	now := time.Now().UTC()
	return s.repo.Upsert(ctx, &domain.Settings{
		UserID:             userID,
		AccentColor:        accentColor,
		EmailNotifications: emailNotifications,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
}
