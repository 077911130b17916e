package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TronTram/TimeTracker-sub003/internal/model"
)

func TestAPIFetcherFetchUser(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.Theme = model.ThemeDark

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/user", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(model.User{ID: "u1", Email: "u1@example.com", Preferences: &prefs})
	}))
	defer server.Close()

	fetcher := NewAPIFetcher(server.URL, server.Client())
	user, err := fetcher.FetchUser(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.NotNil(t, user.Preferences)
	assert.Equal(t, model.ThemeDark, user.Preferences.Theme)
}

func TestAPIFetcherNon2xxIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	fetcher := NewAPIFetcher(server.URL, server.Client())
	user, err := fetcher.FetchUser(context.Background(), "tok-123")
	assert.Nil(t, user)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
