package usecase

import (
	"context"

	"taskdeck/internal/domain"
	"taskdeck/internal/session"
	"taskdeck/internal/taskcache"
)

// Logout is the use case for ending the session.
type Logout struct {
	session *session.Manager
	cache   *taskcache.Cache
	logger  domain.Logger
}

// NewLogout creates a new Logout use case.
func NewLogout(session *session.Manager, cache *taskcache.Cache, logger domain.Logger) *Logout {
	return &Logout{
		session: session,
		cache:   cache,
		logger:  logger,
	}
}

// Execute logs out. Local state is cleared even when the server cannot be
// reached, so the command never fails.
func (uc *Logout) Execute(ctx context.Context) {
	uc.session.Logout(ctx)
	uc.cache.ClearState()
	uc.logger.Info("auth", "logout")
}
