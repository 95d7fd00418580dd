package model

import "time"

// Session is a server-side login session. The token is the only thing
// the client ever holds (inside the signed session cookie) and the
// expiry is a hard cutoff, not sliding.
type Session struct {
	Token     string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}
