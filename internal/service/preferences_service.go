package service

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/TronTram/TimeTracker-sub003/internal/errors"
	"github.com/TronTram/TimeTracker-sub003/internal/model"
	"github.com/TronTram/TimeTracker-sub003/internal/repository"
)

// PreferencesService is the durable commit side of the draft workflow: clients
// hold a local draft, PUT the full document here, then mark the draft saved.
type PreferencesService struct {
	repo   *repository.PreferencesRepository
	logger *zap.Logger
}

func NewPreferencesService(repo *repository.PreferencesRepository, logger *zap.Logger) *PreferencesService {
	return &PreferencesService{repo: repo, logger: logger}
}

func (s *PreferencesService) Get(ctx context.Context, userID string) (*model.Preferences, *apperrors.APIError) {
	prefs, err := s.repo.GetByUserID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("preferences_not_found", "preferences not found")
	}
	if err != nil {
		s.logger.Error("query preferences", zap.String("userId", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to query preferences")
	}
	return prefs, nil
}

func (s *PreferencesService) Update(ctx context.Context, userID string, prefs model.Preferences) (*model.Preferences, *apperrors.APIError) {
	if apiErr := validatePreferences(prefs); apiErr != nil {
		return nil, apiErr
	}

	if err := s.repo.Update(ctx, userID, &prefs); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("preferences_not_found", "preferences not found")
		}
		s.logger.Error("update preferences", zap.String("userId", userID), zap.Error(err))
		return nil, apperrors.Internal("failed to update preferences")
	}

	return &prefs, nil
}

func validatePreferences(prefs model.Preferences) *apperrors.APIError {
	if !model.ValidTheme(prefs.Theme) {
		return apperrors.BadRequest("invalid_theme", "theme must be light, dark, or system")
	}
	if prefs.WorkDuration <= 0 || prefs.ShortBreakDuration <= 0 || prefs.LongBreakDuration <= 0 {
		return apperrors.BadRequest("invalid_duration", "durations must be positive")
	}
	if prefs.LongBreakInterval < 1 {
		return apperrors.BadRequest("invalid_interval", "long break interval must be at least 1")
	}
	return nil
}
