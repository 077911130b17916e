package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/TronTram/TimeTracker-sub003/internal/model"
)

// APIFetcher is the HTTP UserFetcher for GET /api/auth/user. Any non-2xx
// response is a fetch failure.
type APIFetcher struct {
	baseURL string
	client  *http.Client
}

func NewAPIFetcher(baseURL string, client *http.Client) *APIFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIFetcher{baseURL: baseURL, client: client}
}

func (f *APIFetcher) FetchUser(ctx context.Context, token string) (*model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/auth/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch user: unexpected status %d", resp.StatusCode)
	}

	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// StaticTokenSource holds a fixed session, useful for CLI clients and tests.
// Terminate deactivates it locally.
type StaticTokenSource struct {
	session *ExternalSession
}

func NewStaticTokenSource(userID, token string) *StaticTokenSource {
	return &StaticTokenSource{session: &ExternalSession{UserID: userID, Token: token}}
}

func (s *StaticTokenSource) Session(context.Context) (*ExternalSession, error) {
	return s.session, nil
}

func (s *StaticTokenSource) Terminate(context.Context) error {
	s.session = nil
	return nil
}
