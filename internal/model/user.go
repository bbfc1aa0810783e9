package model

import "time"

type User struct {
	ID                   uint64 `gorm:"primaryKey"`
	Username             string `gorm:"uniqueIndex;size:64;not null"`
	Email                string `gorm:"uniqueIndex;size:128;not null"`
	Password             string `gorm:"size:255;not null"`
	Picture              string `gorm:"size:255"`
	ResetPasswordToken   *string `gorm:"size:64;index"`
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PublicUser is the profile projection returned by login and member listings.
type PublicUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Picture  string `json:"picture"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Picture: u.Picture}
}
