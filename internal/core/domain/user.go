package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles an account can hold. The set is fixed at
// compile time; the store only persists which of the two a user holds.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var ErrUserNotFound = errors.New("User not found")
var ErrUsernameTaken = errors.New("Username already exists")
var ErrEmailTaken = errors.New("Email already exists")
var ErrInvalidCredentials = errors.New("Invalid username or password")
var ErrSelfDelete = errors.New("Cannot delete your own account")

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RoleFor maps the wire-level admin flag to a Role.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Identity is the request-scoped authenticated caller, built once by the
// auth middleware from verified token claims and passed explicitly through
// handlers and services.
type Identity struct {
	Username string
	IsAdmin  bool
}

// Info is the public projection of a User returned by the API.
type Info struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// InfoOf builds the public projection for a user record.
func InfoOf(u *User) Info {
	return Info{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin(),
	}
}
