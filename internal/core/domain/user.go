package domain

import "time"

// Role is the permission level carried by a user and their tokens.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// Elevated reports whether r may moderate content.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleManager
}

// User models an account that can author and moderate content.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserView is the public projection of a user. It never carries the hash.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// View returns the public projection of u.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Claim returns the identity claim that tokens issued for u carry.
func (u *User) Claim() Claim {
	return Claim{ID: u.ID, Role: u.Role, Email: u.Email}
}
