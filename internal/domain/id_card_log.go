package domain

import "time"

// IDCardLog records a single physical ID card issuance for an approved citizen.
type IDCardLog struct {
	ID        int64     `db:"id"`
	NIN       string    `db:"nin"`
	IssuedBy  string    `db:"issued_by"`
	CardPath  string    `db:"card_path"`
	CreatedAt time.Time `db:"created_at"`
}
