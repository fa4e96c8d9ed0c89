package domain

import "time"

// User is an account allowed to sign in. It is immutable once created.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the authenticated identity resolved from a request's session
// token. A zero Session means the request is anonymous.
type Session struct {
	Username string
	Token    string
}

// Authenticated reports whether the session carries a user.
func (s Session) Authenticated() bool {
	return s.Username != ""
}
