package model

import "time"

// Session is a server side login session. The ID is the opaque value stored
// in the session cookie, nothing about the user is kept client side
type Session struct {
	ID        string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"index;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"-"`
	CreatedAt int64     `json:"-"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
