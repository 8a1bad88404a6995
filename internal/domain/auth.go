package domain

// Credentials are the inputs for logging in.
type Credentials struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// Validate checks that the credentials can be submitted.
func (c *Credentials) Validate() error {
	if c.Email == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Registration are the inputs for creating a new account.
type Registration struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone,omitempty"`
	Department      string `json:"department,omitempty"`
}

// Validate checks that the registration can be submitted.
func (r *Registration) Validate() error {
	if r.Email == "" || r.Username == "" || r.Password == "" {
		return ErrMissingCredentials
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// AuthResponse is the token bundle returned by the auth endpoints.
type AuthResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn"` // Seconds until the access token expires
}

// Session is the persisted authenticated-user context.
// User and Token are set and cleared together, never one without the other.
type Session struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	RememberMe   bool   `json:"rememberMe,omitempty"`
}

// IsAuthenticated returns true if both a token and a user are present.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}
