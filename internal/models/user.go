package models

import "time"

// Role enumerates user roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User represents an application account.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	Role         Role       `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	IsOnline     bool       `db:"is_online" json:"isOnline"`
	LastActivity *time.Time `db:"last_activity" json:"lastActivity,omitempty"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	DateJoined   time.Time  `db:"date_joined" json:"dateJoined"`
}

// DisplayName returns "First Last" or the username when names are empty.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserStats summarizes accounts for the admin panel.
type UserStats struct {
	Total  int `db:"total" json:"total"`
	Admins int `db:"admins" json:"admins"`
	Staff  int `db:"staff" json:"staff"`
	Online int `db:"online" json:"online"`
}
