package domain

import "time"

// User is an account holder. PasswordHash never leaves the service layer;
// outward-facing representations are built from the other fields only.
type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2id encoded
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
