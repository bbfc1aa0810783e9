package model

import "time"

type Community struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"type:text"`
	Picture     string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categories []Category `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE"`
}

// Role is a fixed catalog row (seeded at startup), never created by end users.
type Role struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	DisplayName string `gorm:"size:64;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	RoleFounder   = "community_founder"
	RoleModerator = "community_moderator"
	RoleMember    = "community_member"
	RoleSysAdmin  = "system_administrator"
)

// UserCommunity is the membership row: at most one per (user, community).
type UserCommunity struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_user_community"`
	CommunityID uint64 `gorm:"not null;index;uniqueIndex:uk_user_community"`
	RoleID      uint64 `gorm:"not null"`
	Status      string `gorm:"size:16;not null;default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Community *Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE"`
	Role      *Role      `gorm:"foreignKey:RoleID"`
}

func (UserCommunity) TableName() string { return "user_communities" }

// Member is the flattened projection returned by the member listing.
type Member struct {
	ID              uint64 `json:"id"`
	Username        string `json:"username"`
	Picture         string `json:"picture"`
	Role            string `json:"role"`
	RoleDisplayName string `json:"role_display_name"`
}
