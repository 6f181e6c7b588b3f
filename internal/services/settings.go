package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/abrezinsky/archeryscore/internal/logger"
	"github.com/abrezinsky/archeryscore/internal/repository"
)

// SettingBaseURL is the settings key of the public base URL
const SettingBaseURL = "base_url"

// SettingsService handles settings-related business logic
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// GetBaseURL returns the public base URL, or "" when not configured
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, SettingBaseURL)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetBaseURL saves the public base URL without a trailing slash
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	if err := s.repo.SetSetting(ctx, SettingBaseURL, url); err != nil {
		return err
	}
	s.log.Info("Base URL updated", "base_url", url)
	return nil
}

// GetSetting retrieves a setting by key
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting saves a setting value
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}
