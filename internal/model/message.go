package model

import "time"

// Message is append-only chat history, never edited or deleted.
type Message struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	CommunityID uint64 `gorm:"not null;index" json:"community_id"`
	UserID      uint64 `gorm:"not null;index" json:"user_id"`
	Text        string `gorm:"size:1024;not null" json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Community *Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
}
