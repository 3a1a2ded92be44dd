package ports

import (
	"context"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
)

// SessionStore persists one session document per session ID so a login
// survives gateway restarts. Implementations must return
// domain.ErrSessionNotFound for unknown IDs.
type SessionStore interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, id string, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}
