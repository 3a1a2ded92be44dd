package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
)

// SessionService owns the session lifecycle: minting IDs at login, loading
// snapshots per request, and removing records at logout. It is constructed
// once in the composition root and injected into the guard and handlers;
// there is no package-level session state.
type SessionService struct {
	store ports.SessionStore
	log   zerolog.Logger
}

func NewSessionService(store ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{store: store, log: log}
}

// Begin builds an authenticated session from a login result and persists it.
// User, token and permissions are set together so the session invariant
// (token present iff user present) holds from the first write.
func (s *SessionService) Begin(ctx context.Context, user *domain.User, token string) (string, *domain.Session, error) {
	sess := &domain.Session{}
	sess.SetUser(user)
	sess.SetToken(token)
	sess.SetPermissions(domain.PermissionsForRole(user.Role))

	id := uuid.NewString()
	if err := s.store.Save(ctx, id, sess); err != nil {
		return "", nil, err
	}
	s.log.Info().Str("user", user.Email).Int("permission", sess.PermissionLevel()).Msg("session started")
	return id, sess, nil
}

// Snapshot loads the persisted session for id. Unknown or unreadable
// sessions resolve to nil; the caller treats that as signed out.
func (s *SessionService) Snapshot(ctx context.Context, id string) *domain.Session {
	if id == "" {
		return nil
	}
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Warn().Err(err).Msg("session load failed")
		}
		return nil
	}
	return sess
}

// End clears the session and deletes the persisted record. Store failures
// are logged, not surfaced: logout must always succeed for the user.
func (s *SessionService) End(ctx context.Context, id string) {
	if id == "" {
		return
	}
	sess := s.Snapshot(ctx, id)
	if sess != nil {
		sess.ClearAuth()
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Msg("session delete failed")
	}
}
