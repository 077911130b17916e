package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/TronTram/TimeTracker-sub003/internal/db"
	"github.com/TronTram/TimeTracker-sub003/internal/handler"
	"github.com/TronTram/TimeTracker-sub003/internal/model"
	"github.com/TronTram/TimeTracker-sub003/internal/repository"
	"github.com/TronTram/TimeTracker-sub003/internal/router"
	"github.com/TronTram/TimeTracker-sub003/internal/service"
	"github.com/TronTram/TimeTracker-sub003/internal/session"
	"github.com/TronTram/TimeTracker-sub003/internal/store"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID          string             `json:"id"`
		Email       string             `json:"email"`
		Preferences *model.Preferences `json:"preferences"`
	} `json:"user"`
}

type preferencesEnvelope struct {
	Preferences model.Preferences `json:"preferences"`
}

type alertResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Alerted bool   `json:"alerted"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestUserFetchAndPreferencesCommit(t *testing.T) {
	engine := setupTestEngine(t)

	auth := registerUser(t, engine, "user1@example.com", "123456")
	if auth.User.Preferences == nil {
		t.Fatal("expected default preferences on the registered user")
	}
	if auth.User.Preferences.Theme != model.ThemeSystem {
		t.Fatalf("expected system theme default, got %s", auth.User.Preferences.Theme)
	}

	// Fetch the full record, as the session binder does on bootstrap.
	status, body := requestJSON(t, engine, http.MethodGet, "/api/auth/user", auth.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on user fetch, got %d: %s", status, string(body))
	}
	var fetched model.User
	if err := json.Unmarshal(body, &fetched); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if fetched.ID != auth.User.ID {
		t.Fatalf("expected user %s, got %s", auth.User.ID, fetched.ID)
	}
	if fetched.Preferences == nil {
		t.Fatal("expected nested preferences on fetched user")
	}

	// Commit an updated preferences document.
	updated := *fetched.Preferences
	updated.Theme = model.ThemeDark
	updated.WorkDuration = 50
	status, body = requestJSON(t, engine, http.MethodPut, "/api/preferences", auth.Token, updated)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on preferences commit, got %d: %s", status, string(body))
	}

	status, body = requestJSON(t, engine, http.MethodGet, "/api/preferences", auth.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on preferences read, got %d", status)
	}
	var envelope preferencesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal preferences: %v", err)
	}
	if envelope.Preferences.Theme != model.ThemeDark || envelope.Preferences.WorkDuration != 50 {
		t.Fatalf("committed preferences not persisted: %+v", envelope.Preferences)
	}

	// Invalid documents are rejected before touching storage.
	invalid := updated
	invalid.WorkDuration = -1
	status, body = requestJSON(t, engine, http.MethodPut, "/api/preferences", auth.Token, invalid)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid durations, got %d", status)
	}
	var apiErr apiErrorEnvelope
	if err := json.Unmarshal(body, &apiErr); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if apiErr.Error.Code != "invalid_duration" {
		t.Fatalf("expected invalid_duration, got %s", apiErr.Error.Code)
	}
}

func TestUserFetchRequiresAuth(t *testing.T) {
	engine := setupTestEngine(t)

	status, _ := requestJSON(t, engine, http.MethodGet, "/api/auth/user", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestPerformanceTelemetry(t *testing.T) {
	engine := setupTestEngine(t)

	post := func(event map[string]interface{}) alertResponse {
		t.Helper()
		status, body := requestJSON(t, engine, http.MethodPost, "/api/monitoring/performance", "", event)
		if status != http.StatusOK {
			t.Fatalf("expected 200 on telemetry post, got %d: %s", status, string(body))
		}
		var resp alertResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal alert response: %v", err)
		}
		return resp
	}

	slow := post(map[string]interface{}{
		"type": "slow_api", "name": "GET /api/projects", "duration": 6000,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if !slow.Alerted {
		t.Fatal("expected alert for slow_api above 5000ms")
	}

	fast := post(map[string]interface{}{
		"type": "slow_api", "name": "GET /api/projects", "duration": 4000,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if fast.Alerted {
		t.Fatal("expected no alert for slow_api below 5000ms")
	}

	status, _ := requestJSON(t, engine, http.MethodPost, "/api/monitoring/performance", "", map[string]interface{}{
		"type": "bogus", "name": "x", "timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown event type, got %d", status)
	}

	status, body := requestJSON(t, engine, http.MethodGet, "/api/monitoring/performance", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on stats, got %d", status)
	}
	if !bytes.Contains(body, []byte("stats")) {
		t.Fatalf("expected mock stats payload, got %s", string(body))
	}
}

// TestSessionBinderAgainstServer drives the client core end to end against
// the real API: bind, draft edits, durable commit, refresh, sign out.
func TestSessionBinderAgainstServer(t *testing.T) {
	engine := setupTestEngine(t)
	server := httptest.NewServer(engine)
	defer server.Close()

	auth := registerUser(t, engine, "binder@example.com", "123456")

	ctx := context.Background()
	st := store.New(ctx, store.NewMemoryBackend(), zaptest.NewLogger(t))
	tokens := session.NewStaticTokenSource(auth.User.ID, auth.Token)
	fetcher := session.NewAPIFetcher(server.URL, server.Client())
	binder := session.NewBinder(tokens, fetcher, st, zaptest.NewLogger(t))

	binder.Bind(ctx)
	snap := binder.Snapshot()
	if !snap.IsAuthenticated {
		t.Fatalf("expected authenticated binder, got phase %s error %q", snap.Phase, snap.Error)
	}

	// Edit the draft, commit it through the API, then mark it saved.
	dark := model.ThemeDark
	st.UpdatePreferences(ctx, model.PreferencesPatch{Theme: &dark})
	draft := st.Snapshot().Preferences
	status, body := requestJSON(t, engine, http.MethodPut, "/api/preferences", auth.Token, draft)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on commit, got %d: %s", status, string(body))
	}
	st.MarkChangesSaved()
	if st.Snapshot().UnsavedChanges {
		t.Fatal("expected clean draft after commit")
	}

	// A refresh pulls the committed preferences back as the new baseline.
	binder.RefreshUser(ctx)
	if theme := st.Snapshot().Preferences.Theme; theme != model.ThemeDark {
		t.Fatalf("expected dark theme after refresh, got %s", theme)
	}

	binder.SignOut(ctx)
	snap = binder.Snapshot()
	if snap.IsAuthenticated || snap.User != nil {
		t.Fatal("expected cleared session after sign out")
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := setupTestEngine(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()

	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if recorder.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin header: %s", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
}

func setupTestEngine(t *testing.T) http.Handler {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	logger := zaptest.NewLogger(t)
	userRepo := repository.NewUserRepository(database)
	prefsRepo := repository.NewPreferencesRepository(database)

	authService := service.NewAuthService(userRepo, prefsRepo, "test-secret", 24*time.Hour, logger)
	prefsService := service.NewPreferencesService(prefsRepo, logger)
	monitoringService := service.NewMonitoringService(logger)

	authHandler := handler.NewAuthHandler(authService)
	prefsHandler := handler.NewPreferencesHandler(prefsService)
	monitoringHandler := handler.NewMonitoringHandler(monitoringService)

	return router.New(authService, authHandler, prefsHandler, monitoringHandler, []string{"http://localhost:5173"})
}

func registerUser(t *testing.T, server http.Handler, email, password string) authResponse {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s failed with status %d: %s", email, status, string(body))
	}
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("empty token for user %s", email)
	}
	return resp
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
