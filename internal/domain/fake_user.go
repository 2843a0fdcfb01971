package domain

import "time"

// FakeUserStatus controls whether a generated account is usable in test runs.
type FakeUserStatus string

const (
	FakeUserStatusActive  FakeUserStatus = "active"
	FakeUserStatusBlocked FakeUserStatus = "blocked"
)

// FakeUser is a synthetic account generated for load and UX testing.
type FakeUser struct {
	ID             int64
	Name           string
	Email          string
	City           string
	TargetAudience string
	Status         FakeUserStatus
	CreatedAt      time.Time
}
