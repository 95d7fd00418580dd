package model

import "time"

// VerificationToken holds a pending one-time code. Identifier is the
// email the code was issued for, (identifier, code) is the composite
// lookup key used when consuming it.
type VerificationToken struct {
	ID         int    `gorm:"primaryKey;autoIncrement"`
	Identifier string `gorm:"index;uniqueIndex:idx_identifier_code;not null"`
	Code       string `gorm:"uniqueIndex:idx_identifier_code;not null"`
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

func (t *VerificationToken) Expired() bool {
	return t.ExpiresAt.Before(time.Now())
}
