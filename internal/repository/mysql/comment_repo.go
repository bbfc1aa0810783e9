package mysql

import (
	"seedy/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.First(&comment, id).Error
	return &comment, err
}

// ListByPost returns a post's comments oldest-first with author and
// reactions attached.
func (r *CommentRepository) ListByPost(postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.Where("post_id = ?", postID).
		Preload("User").
		Preload("Reactions").
		Order("created_at").
		Find(&list).Error
	return list, err
}

func (r *CommentRepository) Delete(id uint64) (bool, error) {
	res := r.DB.Delete(&model.Comment{}, id)
	return res.RowsAffected > 0, res.Error
}
