package model

import "time"

// Roles a user can hold. Only moderator and admin are subject to
// permission checks, ordinary users bypass them entirely.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID            string `gorm:"primaryKey"`
	FullName      string `gorm:"not null"`
	Email         string `gorm:"unique;not null"`
	PasswordHash  string `gorm:"not null" json:"-"`
	Image         string
	Role          string `gorm:"default:user;not null"`
	Permissions   StringSlice
	EmailVerified *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Sessions       []Session       `gorm:"foreignKey:UserID"`
	ResendRequests []ResendRequest `gorm:"foreignKey:UserID"`
}

// Verified reports whether the user completed OTP verification.
func (u *User) Verified() bool {
	return u.EmailVerified != nil
}
