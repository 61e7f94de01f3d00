package domain

import (
	"errors"
	"time"
)

// Role is the single authorization axis of the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether the role is one of the closed set of portal roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Home returns the portal path a user with this role lands on after sign-in.
func (r Role) Home() string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/client"
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User models an account in either portal. PasswordHash never leaves the
// repository layer except through FindByEmail; every other read path
// returns users with the hash cleared.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public returns a copy safe to hand to transport layers.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Identity is the decoded payload of a verified session token. It is an
// ephemeral projection of a User; nothing about it is persisted server-side.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}
