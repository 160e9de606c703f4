package domain

import "time"

// UserAccount belongs to the dashboard layer; the ingestion pipeline never
// touches it.
type UserAccount struct {
	Email        string
	Name         string
	PasswordHash string
	Interests    []Department
	CreatedAt    time.Time
}

// Session is the authenticated request context resolved from a bearer
// token. It replaces any ambient per-request globals.
type Session struct {
	Email     string
	Interests []Department
}
