package httpapi

import (
	"context"

	"taskdeck/internal/domain"
)

// envelope is the wrapper the auth endpoints put around their payloads.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// AuthClient implements domain.AuthAPI over the REST backend.
type AuthClient struct {
	client *Client
}

// NewAuthClient creates an AuthClient.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

// Login exchanges credentials for a token bundle.
func (a *AuthClient) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	var resp envelope[*domain.AuthResponse]
	if err := a.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return unwrapAuth(resp, "Login failed")
}

// Register creates a new account, returned already authenticated.
func (a *AuthClient) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResponse, error) {
	var resp envelope[*domain.AuthResponse]
	if err := a.client.Post(ctx, "/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return unwrapAuth(resp, "Registration failed")
}

// Logout notifies the server that the session ended.
func (a *AuthClient) Logout(ctx context.Context) error {
	return a.client.Post(ctx, "/auth/logout", struct{}{}, nil)
}

// Refresh exchanges a refresh token for a new token bundle.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var resp envelope[*domain.AuthResponse]
	if err := a.client.Post(ctx, "/auth/refresh", body, &resp); err != nil {
		return nil, err
	}
	return unwrapAuth(resp, "Token refresh failed")
}

// unwrapAuth rejects envelope-level failures that arrive with a 2xx status.
func unwrapAuth(resp envelope[*domain.AuthResponse], fallback string) (*domain.AuthResponse, error) {
	if !resp.Success || resp.Data == nil {
		message := resp.Message
		if message == "" {
			message = fallback
		}
		return nil, &domain.APIError{StatusCode: 200, Message: message}
	}
	return resp.Data, nil
}

// Ensure AuthClient implements AuthAPI.
var _ domain.AuthAPI = (*AuthClient)(nil)
