// Package models defines the persisted data model of the dashboard server.
package models

import "time"

// User is one row of the users table. PasswordHash is a bcrypt digest; the
// plaintext password never reaches this struct.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
