// Package session reconciles an external identity session with the locally
// fetched user record. Authentication status is always derived from both
// sources; it is never stored directly.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/TronTram/TimeTracker-sub003/internal/model"
	"github.com/TronTram/TimeTracker-sub003/internal/store"
)

type Phase string

const (
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseLoading         Phase = "loading"
	PhaseAuthenticated   Phase = "authenticated"
	PhaseError           Phase = "error"
)

// ExternalSession is the opaque identity provider's view of the session.
type ExternalSession struct {
	UserID string
	Token  string
}

// TokenSource is the opaque identity provider. Session returns nil when no
// session is active.
type TokenSource interface {
	Session(ctx context.Context) (*ExternalSession, error)
	Terminate(ctx context.Context) error
}

// UserFetcher loads the full user record for a session token.
type UserFetcher interface {
	FetchUser(ctx context.Context, token string) (*model.User, error)
}

// Binder drives the session phase machine and feeds fetched records into the
// preferences store.
type Binder struct {
	mu         sync.Mutex
	tokens     TokenSource
	fetcher    UserFetcher
	store      *store.Store
	logger     *zap.Logger
	phase      Phase
	userID     string
	user       *model.User
	errMsg     string
	generation uint64
}

// Snapshot is the externally visible session state. IsAuthenticated is
// computed, never stored: external session active AND local record present.
type Snapshot struct {
	UserID          string
	User            *model.User
	Phase           Phase
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

func NewBinder(tokens TokenSource, fetcher UserFetcher, st *store.Store, logger *zap.Logger) *Binder {
	return &Binder{
		tokens:  tokens,
		fetcher: fetcher,
		store:   st,
		logger:  logger,
		phase:   PhaseUnauthenticated,
	}
}

// Bind resolves the external session and, when one is active, fetches the
// local user record. No session means unauthenticated and done. A session
// resolution failure clears the local mirror: without a confirmed session the
// record has no owner, and a half-cleared snapshot must never report
// authenticated.
func (b *Binder) Bind(ctx context.Context) {
	sess, err := b.tokens.Session(ctx)
	if err != nil {
		b.mu.Lock()
		b.nextGenerationLocked()
		b.phase = PhaseError
		b.userID = ""
		b.user = nil
		b.errMsg = err.Error()
		b.mu.Unlock()
		return
	}
	if sess == nil {
		b.mu.Lock()
		b.nextGenerationLocked()
		b.phase = PhaseUnauthenticated
		b.userID = ""
		b.user = nil
		b.errMsg = ""
		b.mu.Unlock()
		return
	}

	// The store's loading flag goes up before the generation is assigned:
	// any later SignOut first bumps the generation, so its SetLoading(false)
	// always lands after this and cannot be overwritten by a bind whose
	// fetch will be discarded.
	if b.store != nil {
		b.store.SetLoading(true)
	}

	b.mu.Lock()
	b.phase = PhaseLoading
	b.userID = sess.UserID
	b.errMsg = ""
	gen := b.nextGenerationLocked()
	b.mu.Unlock()

	b.fetch(ctx, sess.Token, gen, false)
}

// RefreshUser re-issues the user fetch. A failed refresh surfaces the error
// but keeps any previously loaded record (stale-but-available).
func (b *Binder) RefreshUser(ctx context.Context) {
	sess, err := b.tokens.Session(ctx)
	if err != nil || sess == nil {
		return
	}

	b.mu.Lock()
	b.userID = sess.UserID
	gen := b.nextGenerationLocked()
	b.mu.Unlock()

	b.fetch(ctx, sess.Token, gen, true)
}

// SignOut terminates the external session and clears the local record
// unconditionally. Remote termination failures are logged, never surfaced.
func (b *Binder) SignOut(ctx context.Context) {
	if err := b.tokens.Terminate(ctx); err != nil && b.logger != nil {
		b.logger.Warn("terminate external session",
			zap.String("userId", b.Snapshot().UserID),
			zap.Error(err))
	}

	b.mu.Lock()
	b.nextGenerationLocked()
	b.phase = PhaseUnauthenticated
	b.userID = ""
	b.user = nil
	b.errMsg = ""
	b.mu.Unlock()

	if b.store != nil {
		b.store.SetUser(ctx, nil)
		b.store.SetLoading(false)
	}
}

func (b *Binder) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		UserID:          b.userID,
		User:            b.user,
		Phase:           b.phase,
		IsAuthenticated: b.userID != "" && b.user != nil,
		IsLoading:       b.phase == PhaseLoading,
		Error:           b.errMsg,
	}
}

// nextGenerationLocked invalidates every in-flight fetch. Callers must hold
// the mutex.
func (b *Binder) nextGenerationLocked() uint64 {
	b.generation++
	return b.generation
}

// fetch completes a user load tagged with a generation. A completion whose
// generation no longer matches the current one is discarded, so overlapping
// refreshes and sign-out-mid-fetch cannot resurrect stale state.
func (b *Binder) fetch(ctx context.Context, token string, gen uint64, refresh bool) {
	user, err := b.fetcher.FetchUser(ctx, token)

	b.mu.Lock()
	if gen != b.generation {
		b.mu.Unlock()
		return
	}

	if err != nil {
		b.errMsg = err.Error()
		if refresh && b.user != nil {
			// Stale-but-available: keep the last-known-good record.
			b.phase = PhaseAuthenticated
		} else if !refresh {
			b.phase = PhaseError
			b.user = nil
		}
		b.mu.Unlock()

		if b.store != nil {
			message := err.Error()
			b.store.SetError(&message)
			b.store.SetLoading(false)
		}
		return
	}

	b.phase = PhaseAuthenticated
	b.user = user
	b.errMsg = ""
	b.mu.Unlock()

	if b.store != nil {
		b.store.SetUser(ctx, user)
		b.store.SetLoading(false)
	}
}
