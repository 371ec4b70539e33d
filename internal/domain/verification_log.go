package domain

import (
	"database/sql"
	"time"
)

type VerificationType string

const (
	VerificationWeb    VerificationType = "web"
	VerificationAPI    VerificationType = "api"
	VerificationMobile VerificationType = "mobile"
	VerificationQR     VerificationType = "qr"
)

type VerificationResult string

const (
	VerificationSuccess  VerificationResult = "success"
	VerificationNotFound VerificationResult = "not_found"
)

// VerificationLog is an append-only audit record of a single lookup attempt.
// NIN is stored by value, not by row reference: not_found attempts keep the
// queried value even when no such citizen ever existed.
type VerificationLog struct {
	ID         int64              `db:"id"`
	NIN        string             `db:"nin"`
	VerifierID sql.NullString     `db:"verifier_id"`
	Type       VerificationType   `db:"verification_type"`
	IPAddress  sql.NullString     `db:"ip_address"`
	UserAgent  sql.NullString     `db:"user_agent"`
	Result     VerificationResult `db:"result"`
	CreatedAt  time.Time          `db:"created_at"`
}
