package models

import "time"

// User is an account on the sync server. PasswordHash holds an encoded
// argon2id digest and never leaves the server.
type User struct {
	UserID       int64     `json:"-"`
	Login        string    `json:"login"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials is the body of the register and login endpoints.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}
