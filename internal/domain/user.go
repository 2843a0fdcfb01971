package domain

import "time"

// RegisterType distinguishes how an account was created.
type RegisterType string

const (
	RegisterTypeManual RegisterType = "manual"
	RegisterTypeGoogle RegisterType = "google_auth"
)

// User is the domain model for marketplace end-users.
type User struct {
	ID           int64
	UID          *string
	Name         string
	Email        string
	Mobile       string
	PasswordHash string
	ProfileImage *string
	Bio          *string
	RegisterType RegisterType
	LoginType    RegisterType
	City         *string
	Languages    []string
	Interests    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
