package domain

import "time"

// User is the account record owned by the persistence store. Email is
// stored lowercase and unique; PasswordHash is an argon2id PHC string and
// must never appear in responses or logs.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	DOB          *time.Time
	Gender       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
