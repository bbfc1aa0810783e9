package model

import "time"

type Category struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index"`
	Name        string `gorm:"size:64;not null"`
	Description string `gorm:"size:255;not null"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Posts []Post `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

type Post struct {
	ID         uint64 `gorm:"primaryKey"`
	CategoryID uint64 `gorm:"not null;index"`
	UserID     uint64 `gorm:"not null;index"`
	Title      string `gorm:"size:200;not null"`
	Content    string `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	User     *User     `gorm:"foreignKey:UserID"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	UserID    uint64 `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User      *User             `gorm:"foreignKey:UserID"`
	Reactions []CommentReaction `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}
