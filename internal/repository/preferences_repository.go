package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/TronTram/TimeTracker-sub003/internal/model"
)

type PreferencesRepository struct {
	db *sql.DB
}

func NewPreferencesRepository(db *sql.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// CreateDefaults seeds a freshly registered user with the fixed default set.
func (r *PreferencesRepository) CreateDefaults(ctx context.Context, userID string) error {
	prefs := model.DefaultPreferences()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO preferences (
			user_id, theme, work_duration, short_break_duration, long_break_duration,
			long_break_interval, auto_start_breaks, auto_start_pomodoros,
			sound_enabled, notifications_enabled, default_project_id, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID,
		prefs.Theme,
		prefs.WorkDuration,
		prefs.ShortBreakDuration,
		prefs.LongBreakDuration,
		prefs.LongBreakInterval,
		prefs.AutoStartBreaks,
		prefs.AutoStartPomodoros,
		prefs.SoundEnabled,
		prefs.NotificationsEnabled,
		nil,
		now,
	)
	if err != nil {
		return fmt.Errorf("create default preferences: %w", err)
	}
	return nil
}

func (r *PreferencesRepository) GetByUserID(ctx context.Context, userID string) (*model.Preferences, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT theme, work_duration, short_break_duration, long_break_duration,
		        long_break_interval, auto_start_breaks, auto_start_pomodoros,
		        sound_enabled, notifications_enabled, default_project_id
		 FROM preferences
		 WHERE user_id = ?`,
		userID,
	)

	var prefs model.Preferences
	var defaultProjectID sql.NullString
	err := row.Scan(
		&prefs.Theme,
		&prefs.WorkDuration,
		&prefs.ShortBreakDuration,
		&prefs.LongBreakDuration,
		&prefs.LongBreakInterval,
		&prefs.AutoStartBreaks,
		&prefs.AutoStartPomodoros,
		&prefs.SoundEnabled,
		&prefs.NotificationsEnabled,
		&defaultProjectID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	if defaultProjectID.Valid {
		value := defaultProjectID.String
		prefs.DefaultProjectID = &value
	}
	return &prefs, nil
}

func (r *PreferencesRepository) Update(ctx context.Context, userID string, prefs *model.Preferences) error {
	var defaultProjectID interface{}
	if prefs.DefaultProjectID != nil {
		defaultProjectID = *prefs.DefaultProjectID
	}

	result, err := r.db.ExecContext(
		ctx,
		`UPDATE preferences
		 SET theme = ?,
		     work_duration = ?,
		     short_break_duration = ?,
		     long_break_duration = ?,
		     long_break_interval = ?,
		     auto_start_breaks = ?,
		     auto_start_pomodoros = ?,
		     sound_enabled = ?,
		     notifications_enabled = ?,
		     default_project_id = ?,
		     updated_at = ?
		 WHERE user_id = ?`,
		prefs.Theme,
		prefs.WorkDuration,
		prefs.ShortBreakDuration,
		prefs.LongBreakDuration,
		prefs.LongBreakInterval,
		prefs.AutoStartBreaks,
		prefs.AutoStartPomodoros,
		prefs.SoundEnabled,
		prefs.NotificationsEnabled,
		defaultProjectID,
		time.Now().UTC().Format(time.RFC3339Nano),
		userID,
	)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update preferences rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
