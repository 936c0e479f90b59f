package identity

import "time"

// User represents a registered KasKu account holder. Balance is held in minor
// currency units (rupiah) and is only mutated through settlement paths.
type User struct {
	ID            string
	Name          string
	AccountNumber string
	Email         string
	PasswordHash  []byte
	Balance       int64
	TokenVersion  int
	CreatedAt     time.Time
}

// Credentials carries a login or registration request.
type Credentials struct {
	Name     string
	Email    string
	Password string
}
