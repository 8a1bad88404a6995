package usecase

import (
	"context"

	"taskdeck/internal/domain"
	"taskdeck/internal/session"
)

// RegisterInput contains the parameters for creating an account.
type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
	Department      string
}

// RegisterOutput contains the result of creating an account.
type RegisterOutput struct {
	User *domain.User
}

// Register is the use case for creating an account.
type Register struct {
	session *session.Manager
	logger  domain.Logger
}

// NewRegister creates a new Register use case.
func NewRegister(session *session.Manager, logger domain.Logger) *Register {
	return &Register{
		session: session,
		logger:  logger,
	}
}

// Execute creates an account and leaves the session authenticated.
func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	user, err := uc.session.Register(ctx, domain.Registration{
		Email:           in.Email,
		Username:        in.Username,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Phone:           in.Phone,
		Department:      in.Department,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("auth", "register", "user", user.Username)
	return &RegisterOutput{User: user}, nil
}
