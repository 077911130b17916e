// Package store holds the client-session preferences state: the authoritative
// user record mirrored from the server, a working draft of preferences, and a
// dirty flag tracking whether the draft has diverged from the last committed
// baseline.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/TronTram/TimeTracker-sub003/internal/model"
)

// Store is an explicit state container with constructor-injected initial
// state. Mutations are synchronous and atomic with respect to each other.
type Store struct {
	mu             sync.Mutex
	user           *model.User
	draft          model.Preferences
	unsavedChanges bool
	loading        bool
	errMsg         *string
	backend        Backend
	logger         *zap.Logger
}

// Snapshot is a point-in-time copy of the store's state.
type Snapshot struct {
	User           *model.User
	Preferences    model.Preferences
	UnsavedChanges bool
	Loading        bool
	Error          *string
}

// New builds a store seeded with the default preference set. When a backend is
// provided, a previously persisted draft is restored; user, loading, and error
// always start fresh.
func New(ctx context.Context, backend Backend, logger *zap.Logger) *Store {
	s := &Store{
		draft:   model.DefaultPreferences(),
		backend: backend,
		logger:  logger,
	}

	if backend != nil {
		if prefs, ok := restore(ctx, backend, logger); ok {
			s.draft = prefs
		}
	}
	return s
}

// SetUser replaces the authoritative user record. When the record carries
// preferences the draft is re-baselined from them in one atomic replacement;
// otherwise the existing draft is preserved. Unsaved changes and error are
// always cleared.
func (s *Store) SetUser(ctx context.Context, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	if user != nil && user.Preferences != nil {
		s.draft = *user.Preferences
	}
	s.unsavedChanges = false
	s.errMsg = nil
	s.persistLocked(ctx)
}

// UpdatePreferences shallow-merges the patch into the draft and marks it
// dirty. Constraint checking is the caller's contract, not the store's.
func (s *Store) UpdatePreferences(ctx context.Context, patch model.PreferencesPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = patch.Apply(s.draft)
	s.unsavedChanges = true
	s.persistLocked(ctx)
}

// ResetPreferences re-baselines the draft from the authoritative record when
// present, else from the fixed defaults. Idempotent.
func (s *Store) ResetPreferences(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil && s.user.Preferences != nil {
		s.draft = *s.user.Preferences
	} else {
		s.draft = model.DefaultPreferences()
	}
	s.unsavedChanges = false
	s.persistLocked(ctx)
}

// MarkChangesSaved clears the dirty flag without touching draft values. The
// caller must already have durably committed the draft upstream.
func (s *Store) MarkChangesSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsavedChanges = false
}

func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.Theme == "" {
		return model.ThemeSystem
	}
	return s.draft.Theme
}

func (s *Store) SetTheme(ctx context.Context, theme string) {
	s.UpdatePreferences(ctx, model.PreferencesPatch{Theme: &theme})
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) SetError(message *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = message
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		User:           s.user,
		Preferences:    s.draft,
		UnsavedChanges: s.unsavedChanges,
		Loading:        s.loading,
		Error:          s.errMsg,
	}
}

// persistLocked writes the persisted projection of the current draft. Persist
// failures are logged, never surfaced; the in-memory state stays valid.
func (s *Store) persistLocked(ctx context.Context) {
	if s.backend == nil {
		return
	}
	if err := persist(ctx, s.backend, s.draft); err != nil && s.logger != nil {
		s.logger.Warn("persist preferences draft", zap.Error(err))
	}
}
