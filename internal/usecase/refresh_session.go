package usecase

import (
	"context"

	"taskdeck/internal/domain"
	"taskdeck/internal/session"
)

// RefreshSessionOutput contains the result of a token refresh.
type RefreshSessionOutput struct {
	Token     string
	Refreshed bool // False when the current token was still fresh enough
}

// RefreshSession is the use case for refreshing the access token.
type RefreshSession struct {
	session *session.Manager
	logger  domain.Logger
}

// NewRefreshSession creates a new RefreshSession use case.
func NewRefreshSession(session *session.Manager, logger domain.Logger) *RefreshSession {
	return &RefreshSession{
		session: session,
		logger:  logger,
	}
}

// Execute refreshes the access token. With Force false the refresh only
// runs when the token is inside the proactive refresh window.
func (uc *RefreshSession) Execute(ctx context.Context, force bool) (*RefreshSessionOutput, error) {
	if !uc.session.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	if !force && !uc.session.ShouldRefreshToken() {
		return &RefreshSessionOutput{Token: uc.session.Token(), Refreshed: false}, nil
	}

	token, err := uc.session.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("auth", "token refreshed")
	return &RefreshSessionOutput{Token: token, Refreshed: true}, nil
}
