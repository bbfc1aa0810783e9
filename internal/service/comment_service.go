package service

import (
	"seedy/internal/model"
	"seedy/internal/repository/mysql"
)

type CommentService struct {
	repo     *mysql.CommentRepository
	postRepo *mysql.PostRepository
}

func NewCommentService(repo *mysql.CommentRepository, postRepo *mysql.PostRepository) *CommentService {
	return &CommentService{repo: repo, postRepo: postRepo}
}

func (s *CommentService) Create(authorID, postID uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, missing("content")
	}
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, notFound("Post not found")
	}
	comment := &model.Comment{PostID: postID, UserID: authorID, Content: content}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListWithReactions returns a post's comments with authors and reactions.
func (s *CommentService) ListWithReactions(postID uint64) ([]model.Comment, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, notFound("Post not found")
	}
	return s.repo.ListByPost(postID)
}

// Delete allows only the comment's author.
func (s *CommentService) Delete(callerID, commentID uint64) error {
	comment, err := s.repo.FindByID(commentID)
	if err != nil {
		return notFound("Comment not found")
	}
	if comment.UserID != callerID {
		return forbidden("You don't have the necessary permissions to do that.")
	}
	_, err = s.repo.Delete(commentID)
	return err
}
