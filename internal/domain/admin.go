package domain

import "time"

// AdminRole enumerates back-office operator roles.
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperadmin AdminRole = "superadmin"
)

// Admin models a back-office operator account.
type Admin struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
