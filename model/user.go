// Package model defines database models
package model

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    int64  `gorm:"not null" json:"created_at"`

	Files    []File    `gorm:"foreignKey:UserID" json:"-"`
	Folders  []Folder  `gorm:"foreignKey:UserID" json:"-"`
	Sessions []Session `gorm:"foreignKey:UserID" json:"-"`
}

// PublicProfile is the part of a user that may be shown to
// anyone who can see one of their shared files
type PublicProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		Username: u.Username,
		Email:    u.Email,
	}
}
