package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ToggleOutcome reports which branch of the reaction toggle ran.
type ToggleOutcome int

const (
	ToggleCreated ToggleOutcome = iota
	ToggleRemoved
	ToggleSwitched
)

type ReactionRepository struct {
	DB *gorm.DB
}

// TogglePost applies the toggle to a post reaction.
func (r *ReactionRepository) TogglePost(ctx context.Context, userID, postID uint64, reactionType string) (ToggleOutcome, error) {
	return r.toggle(ctx, "post_reactions", "post_id", userID, postID, reactionType)
}

// ToggleComment applies the toggle to a comment reaction.
func (r *ReactionRepository) ToggleComment(ctx context.Context, userID, commentID uint64, reactionType string) (ToggleOutcome, error) {
	return r.toggle(ctx, "comment_reactions", "comment_id", userID, commentID, reactionType)
}

// toggle is the shared algorithm: no row for (user, target) inserts one with
// the given type; a row with the same type is deleted; a row with the other
// type is updated in place. The whole sequence runs in one transaction, and
// the composite unique index on (user, target) backstops concurrent inserts.
func (r *ReactionRepository) toggle(ctx context.Context, table, targetCol string, userID, targetID uint64, reactionType string) (ToggleOutcome, error) {
	var outcome ToggleOutcome
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct {
			ID           uint64
			ReactionType string
		}
		err := tx.Table(table).
			Select("id", "reaction_type").
			Where(targetCol+" = ? AND user_id = ?", targetID, userID).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			outcome = ToggleCreated
			now := time.Now()
			return tx.Table(table).Create(map[string]any{
				targetCol:       targetID,
				"user_id":       userID,
				"reaction_type": reactionType,
				"created_at":    now,
				"updated_at":    now,
			}).Error
		}
		if err != nil {
			return err
		}
		if row.ReactionType == reactionType {
			outcome = ToggleRemoved
			return tx.Exec("DELETE FROM "+table+" WHERE id = ?", row.ID).Error
		}
		outcome = ToggleSwitched
		return tx.Table(table).Where("id = ?", row.ID).Updates(map[string]any{
			"reaction_type": reactionType,
			"updated_at":    time.Now(),
		}).Error
	})
	return outcome, err
}

// CountByTarget tallies likes and dislikes for one target row.
func (r *ReactionRepository) CountByTarget(ctx context.Context, table, targetCol string, targetID uint64) (likes, dislikes int64, err error) {
	type pair struct {
		ReactionType string
		N            int64
	}
	var rows []pair
	err = r.DB.WithContext(ctx).Table(table).
		Select("reaction_type, COUNT(*) AS n").
		Where(targetCol+" = ?", targetID).
		Group("reaction_type").
		Scan(&rows).Error
	for _, p := range rows {
		if p.ReactionType == "like" {
			likes = p.N
		} else {
			dislikes = p.N
		}
	}
	return likes, dislikes, err
}
