package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/docstore"
	"github.com/anwarshop/storefront/internal/domain"
	"github.com/anwarshop/storefront/pkg/errors"
)

// Watcher tracks the current session delivered by the hosted identity
// provider. Token verification stays with the provider; this side only
// reads the claims, checks the users collection for admin-applied blocks
// or deletions, and mirrors new accounts into that collection.
type Watcher struct {
	mu      sync.Mutex
	current *domain.Session

	client   *docstore.Client
	logger   *zap.Logger
	onChange func(*domain.Session)
}

func NewWatcher(client *docstore.Client, logger *zap.Logger) *Watcher {
	return &Watcher{
		client: client,
		logger: logger,
	}
}

// OnChange registers a callback for session transitions. A nil session
// means signed out.
func (w *Watcher) OnChange(fn func(*domain.Session)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Current returns the active session, or nil when signed out
func (w *Watcher) Current() *domain.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// SignIn accepts a provider-issued ID token, derives the session from its
// claims, and enforces the users-collection account state. A blocked or
// deleted account forces sign-out and reports why.
func (w *Watcher) SignIn(ctx context.Context, idToken string) (*domain.Session, error) {
	session, err := sessionFromToken(idToken)
	if err != nil {
		return nil, err
	}

	if err := w.verifyAccount(ctx, session); err != nil {
		w.setSession(nil)
		return nil, err
	}

	if err := w.syncUser(ctx, session); err != nil {
		// Mirroring is best-effort; the provider already authenticated them
		w.logger.Warn("Failed to sync user record", zap.Error(err))
	}

	w.setSession(session)
	return session, nil
}

// SignOut clears the session
func (w *Watcher) SignOut() {
	w.setSession(nil)
}

// verifyAccount checks the users collection for an admin block or
// deletion. Unreachable store falls through: the user stays signed in
// rather than the whole storefront breaking on a transient failure.
func (w *Watcher) verifyAccount(ctx context.Context, session *domain.Session) error {
	var user domain.User
	err := w.client.GetRecord(ctx, docstore.CollectionUsers, session.ID, &user)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			// No record at all means this is a first sign-in; syncUser creates it
			return nil
		}
		w.logger.Warn("Could not verify account status", zap.Error(err))
		return nil
	}
	if user.Status == domain.UserStatusBlocked {
		return &errors.ErrAccountBlocked{UserID: session.ID}
	}
	return nil
}

// syncUser mirrors the account into the users collection when absent
func (w *Watcher) syncUser(ctx context.Context, session *domain.Session) error {
	var existing domain.User
	err := w.client.GetRecord(ctx, docstore.CollectionUsers, session.ID, &existing)
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.ErrNotFound); !ok {
		return err
	}

	user := domain.User{
		ID:         session.ID,
		Name:       session.Name,
		Email:      session.Email,
		Avatar:     session.Avatar,
		DateJoined: time.Now().UTC().Format(time.RFC3339),
		Status:     domain.UserStatusActive,
	}
	return w.client.PutRecord(ctx, docstore.CollectionUsers, session.ID, user)
}

// Recheck re-validates the current session against the users collection.
// A deleted record signs the user out with ErrAccountDeleted; a blocked
// one with ErrAccountBlocked.
func (w *Watcher) Recheck(ctx context.Context) error {
	w.mu.Lock()
	session := w.current
	w.mu.Unlock()
	if session == nil {
		return nil
	}

	var user domain.User
	err := w.client.GetRecord(ctx, docstore.CollectionUsers, session.ID, &user)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			w.setSession(nil)
			return &errors.ErrAccountDeleted{UserID: session.ID}
		}
		w.logger.Warn("Could not re-verify account status", zap.Error(err))
		return nil
	}
	if user.Status == domain.UserStatusBlocked {
		w.setSession(nil)
		return &errors.ErrAccountBlocked{UserID: session.ID}
	}
	return nil
}

func (w *Watcher) setSession(session *domain.Session) {
	w.mu.Lock()
	w.current = session
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn(session)
	}
}

// sessionFromToken extracts identity claims from a provider ID token.
// Signature verification is the provider's concern; the claims are only
// used for display and as the opaque Order.UserID.
func sessionFromToken(idToken string) (*domain.Session, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token: %w", err)
	}

	uid := claimString(claims, "user_id")
	if uid == "" {
		uid = claimString(claims, "sub")
	}
	if uid == "" {
		return nil, fmt.Errorf("id token has no subject")
	}

	email := claimString(claims, "email")
	name := claimString(claims, "name")
	if name == "" && email != "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	avatar := claimString(claims, "picture")
	if avatar == "" && email != "" {
		avatar = fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", email)
	}

	return &domain.Session{
		ID:     uid,
		Name:   name,
		Email:  email,
		Avatar: avatar,
	}, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
