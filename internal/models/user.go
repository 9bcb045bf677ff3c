package models

import "time"

// User is an operator account authorized to sign in over the HTTP API. The
// serial console does not authenticate.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don't expose hash
	CreatedAt    time.Time `json:"created_at"`
}
