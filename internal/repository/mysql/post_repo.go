package mysql

import (
	"seedy/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Category").Preload("User").First(&post, id).Error
	return &post, err
}

// ListByCategories pages posts of the given categories newest-first,
// preloading category and author for the listing projection.
func (r *PostRepository) ListByCategories(categoryIDs []uint64, offset, limit int) ([]model.Post, int64, error) {
	q := r.DB.Model(&model.Post{}).Where("category_id IN ?", categoryIDs)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Post
	err := q.Preload("Category").Preload("User").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *PostRepository) Update(id uint64, fields map[string]any) (bool, error) {
	res := r.DB.Model(&model.Post{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *PostRepository) Delete(id uint64) (bool, error) {
	res := r.DB.Delete(&model.Post{}, id)
	return res.RowsAffected > 0, res.Error
}

// CommunityOf resolves a post to the community owning its category.
func (r *PostRepository) CommunityOf(postID uint64) (uint64, error) {
	var communityID uint64
	err := r.DB.Model(&model.Post{}).
		Select("categories.community_id").
		Joins("JOIN categories ON categories.id = posts.category_id").
		Where("posts.id = ?", postID).
		Scan(&communityID).Error
	if err == nil && communityID == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return communityID, err
}
