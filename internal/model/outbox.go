package model

import "time"

// CommunityOutbox records membership events for asynchronous delivery.
type CommunityOutbox struct {
	ID          uint64 `gorm:"primaryKey"`
	EventType   string `gorm:"size:16;not null"` // join / leave / role_change
	CommunityID uint64 `gorm:"not null"`
	UserID      uint64 `gorm:"not null"`
	Payload     string `gorm:"type:json;not null"`
	Status      int8   `gorm:"not null;default:0"` // 0=pending 1=sent 2=failed
	Retry       int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CommunityOutbox) TableName() string { return "community_outbox" }
