package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/TronTram/TimeTracker-sub003/internal/model"
	"github.com/TronTram/TimeTracker-sub003/internal/repository"
)

// StorageKey is the key under which the store's persisted projection lives.
const StorageKey = "user-store"

// persistVersion tags the serialized projection. Unknown versions are ignored
// on restore so an old draft can never corrupt a newer schema.
const persistVersion = 1

// Backend stores the persisted projection. A nil result with nil error means
// no state has been saved yet.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// persistedState is the allow-list projection: only the preferences draft
// survives a restart. User, loading, and error are deliberately excluded.
type persistedState struct {
	Version     int               `json:"version"`
	Preferences model.Preferences `json:"preferences"`
}

func persist(ctx context.Context, backend Backend, prefs model.Preferences) error {
	raw, err := json.Marshal(persistedState{
		Version:     persistVersion,
		Preferences: prefs,
	})
	if err != nil {
		return fmt.Errorf("marshal persisted state: %w", err)
	}
	return backend.Set(ctx, StorageKey, raw)
}

func restore(ctx context.Context, backend Backend, logger *zap.Logger) (model.Preferences, bool) {
	raw, err := backend.Get(ctx, StorageKey)
	if err != nil {
		if logger != nil {
			logger.Warn("restore preferences draft", zap.Error(err))
		}
		return model.Preferences{}, false
	}
	if raw == nil {
		return model.Preferences{}, false
	}

	var state persistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		if logger != nil {
			logger.Warn("decode persisted state", zap.Error(err))
		}
		return model.Preferences{}, false
	}
	if state.Version != persistVersion {
		return model.Preferences{}, false
	}
	return state.Preferences, true
}

// RepositoryBackend adapts the client_state repository to the Backend
// interface, mapping a missing row to "no state yet".
type RepositoryBackend struct {
	repo *repository.ClientStateRepository
}

func NewRepositoryBackend(repo *repository.ClientStateRepository) *RepositoryBackend {
	return &RepositoryBackend{repo: repo}
}

func (b *RepositoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := b.repo.Get(ctx, key)
	if err == repository.ErrNotFound {
		return nil, nil
	}
	return value, err
}

func (b *RepositoryBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.repo.Set(ctx, key, value)
}

// MemoryBackend is an in-process Backend for tests and ephemeral sessions.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	value, ok := b.values[key]
	if !ok {
		return nil, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	b.values[key] = copied
	return nil
}
