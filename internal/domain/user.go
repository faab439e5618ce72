package domain

import (
	"strings"
	"time"
)

// MaxLoginAttempts is the number of consecutive failed logins that locks an account.
const MaxLoginAttempts = 5

type User struct {
	RecordHeader
	Email     string `gorm:"size:255;not null" json:"email"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Role      Role   `gorm:"size:50;not null;index" json:"role"`
	Phone     string `gorm:"size:20" json:"phone"`
	IsActive  bool   `gorm:"not null" json:"is_active"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserFilter struct {
	Role       Role `json:"role"`
	ActiveOnly bool `json:"active_only"`
}

// Credential is the authentication record of a user. One row per user.
type Credential struct {
	UserID        string     `gorm:"primaryKey;type:uuid" json:"user_id"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	LoginAttempts int        `gorm:"not null" json:"login_attempts"`
	IsLocked      bool       `gorm:"not null" json:"is_locked"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

func (Credential) TableName() string {
	return "user_credentials"
}

// RecordFailure counts a failed verification and locks the credential once
// MaxLoginAttempts is reached.
func (c *Credential) RecordFailure() {
	c.LoginAttempts++
	if c.LoginAttempts >= MaxLoginAttempts {
		c.IsLocked = true
	}
}

func (c *Credential) RecordSuccess(now time.Time) {
	c.LoginAttempts = 0
	c.LastLoginAt = &now
}
