package service

import (
	"context"

	"seedy/internal/model"
	"seedy/internal/repository/mysql"
)

type ReactionService struct {
	repo        *mysql.ReactionRepository
	postRepo    *mysql.PostRepository
	commentRepo *mysql.CommentRepository
}

func NewReactionService(repo *mysql.ReactionRepository, postRepo *mysql.PostRepository, commentRepo *mysql.CommentRepository) *ReactionService {
	return &ReactionService{repo: repo, postRepo: postRepo, commentRepo: commentRepo}
}

// ReactToPost toggles the caller's reaction on a post.
func (s *ReactionService) ReactToPost(ctx context.Context, userID, postID uint64, reactionType string) (mysql.ToggleOutcome, error) {
	if err := validateReactionType(reactionType); err != nil {
		return 0, err
	}
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return 0, notFound("Post not found")
	}
	return s.repo.TogglePost(ctx, userID, postID, reactionType)
}

// ReactToComment toggles the caller's reaction on a comment.
func (s *ReactionService) ReactToComment(ctx context.Context, userID, commentID uint64, reactionType string) (mysql.ToggleOutcome, error) {
	if err := validateReactionType(reactionType); err != nil {
		return 0, err
	}
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		return 0, notFound("Comment not found")
	}
	return s.repo.ToggleComment(ctx, userID, commentID, reactionType)
}

// PostCounts tallies likes and dislikes on a post for its detail view.
func (s *ReactionService) PostCounts(ctx context.Context, postID uint64) (likes, dislikes int64, err error) {
	return s.repo.CountByTarget(ctx, "post_reactions", "post_id", postID)
}

func (s *ReactionService) CommentCounts(ctx context.Context, commentID uint64) (likes, dislikes int64, err error) {
	return s.repo.CountByTarget(ctx, "comment_reactions", "comment_id", commentID)
}

func validateReactionType(reactionType string) error {
	if reactionType != model.ReactionLike && reactionType != model.ReactionDislike {
		return invalid("reaction_type must be like or dislike")
	}
	return nil
}
