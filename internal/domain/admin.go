package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "officer"
	// RoleNone marks an unauthenticated or citizen-level caller.
	RoleNone Role = ""
)

// CanReviewApplications reports whether the role may approve or reject
// citizen applications.
func (r Role) CanReviewApplications() bool {
	return r == RoleAdmin || r == RoleOfficer
}

type Admin struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Role         Role      `db:"role"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
