package domain

import (
	"strings"
	"time"
)

// Role represents a user's permission level.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// UserStatus represents a user account state.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// User represents an account in the system.
// Fields are ordered to minimize memory padding.
type User struct {
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Avatar      string     `json:"avatar,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Department  string     `json:"department,omitempty"`
	Role        Role       `json:"role"`
	Status      UserStatus `json:"status"`
}

// FullName returns the user's first and last name joined.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns the uppercase initials for avatar display.
func (u *User) Initials() string {
	initials := ""
	if u.FirstName != "" {
		initials += strings.ToUpper(u.FirstName[:1])
	}
	if u.LastName != "" {
		initials += strings.ToUpper(u.LastName[:1])
	}
	return initials
}

// HasRole returns true if the user has the given role.
func (u *User) HasRole(role Role) bool {
	return u.Role == role
}

// IsAdmin returns true if the user is an administrator.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// IsActive returns true if the account is active.
func (u *User) IsActive() bool {
	return u.Status == UserActive
}
