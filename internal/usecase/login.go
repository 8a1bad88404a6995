// Package usecase contains application use cases.
package usecase

import (
	"context"

	"taskdeck/internal/domain"
	"taskdeck/internal/session"
)

// LoginInput contains the parameters for logging in.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginOutput contains the result of logging in.
type LoginOutput struct {
	User *domain.User
}

// Login is the use case for logging in.
type Login struct {
	session *session.Manager
	logger  domain.Logger
}

// NewLogin creates a new Login use case.
func NewLogin(session *session.Manager, logger domain.Logger) *Login {
	return &Login{
		session: session,
		logger:  logger,
	}
}

// Execute logs in with the given credentials.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	user, err := uc.session.Login(ctx, domain.Credentials{
		Email:      in.Email,
		Password:   in.Password,
		RememberMe: in.RememberMe,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("auth", "login", "user", user.Username)
	return &LoginOutput{User: user}, nil
}
