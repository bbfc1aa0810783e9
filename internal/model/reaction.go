package model

import "time"

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// PostReaction holds one like/dislike mark per (user, post).
type PostReaction struct {
	ID           uint64 `gorm:"primaryKey"`
	PostID       uint64 `gorm:"not null;index;uniqueIndex:uk_post_reaction"`
	UserID       uint64 `gorm:"not null;uniqueIndex:uk_post_reaction"`
	ReactionType string `gorm:"size:8;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (PostReaction) TableName() string { return "post_reactions" }

type CommentReaction struct {
	ID           uint64 `gorm:"primaryKey"`
	CommentID    uint64 `gorm:"not null;index;uniqueIndex:uk_comment_reaction"`
	UserID       uint64 `gorm:"not null;uniqueIndex:uk_comment_reaction"`
	ReactionType string `gorm:"size:8;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Comment *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

func (CommentReaction) TableName() string { return "comment_reactions" }
