package domain

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three application states.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Reviewable reports whether s is a state an officer may set.
// Applications can never be moved back to pending through the API.
func (s Status) Reviewable() bool {
	return s == StatusApproved || s == StatusRejected
}

type Citizen struct {
	ID       int64  `db:"id" json:"-"`
	NIN      string `db:"nin" json:"nin"`
	FullName string `db:"full_name" json:"full_name"`
	Gender   string `db:"gender" json:"gender"`
	DOB      string `db:"dob" json:"dob"`
	Region   string `db:"region" json:"region"`
	District string `db:"district" json:"district"`
	Address  string `db:"address" json:"address,omitempty"`

	Phone sql.NullString `db:"phone" json:"phone,omitempty"`
	Email sql.NullString `db:"email" json:"email,omitempty"`

	Photo            sql.NullString `db:"photo" json:"photo,omitempty"`
	BirthCertificate sql.NullString `db:"birth_certificate" json:"birth_certificate,omitempty"`
	Passport         sql.NullString `db:"passport" json:"passport,omitempty"`
	ResidencyProof   sql.NullString `db:"residency_proof" json:"residency_proof,omitempty"`

	Status Status `db:"status" json:"status"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
