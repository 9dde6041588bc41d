package models

import (
	"time"
)

// User represents a registered account. The password field holds a bcrypt
// hash, never the plaintext. Users are stored as one collection under a
// single key, so mutations re-save the whole collection.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Orders    []Order   `json:"orders"`
}

// UserRegister holds data needed for registration.
type UserRegister struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserLogin holds data needed for login.
type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
