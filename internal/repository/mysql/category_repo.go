package mysql

import (
	"seedy/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindByID(id uint64) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, id).Error
	return &category, err
}

// ListByCommunity returns one page ordered newest-first plus the total count.
func (r *CategoryRepository) ListByCommunity(communityID uint64, offset, limit int) ([]model.Category, int64, error) {
	var total int64
	q := r.DB.Model(&model.Category{}).Where("community_id = ?", communityID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Category
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// NameTaken is case-insensitive within a community.
func (r *CategoryRepository) NameTaken(communityID uint64, name string, ignoreCategoryID uint64) (bool, error) {
	q := r.DB.Model(&model.Category{}).
		Where("community_id = ? AND LOWER(name) = LOWER(?)", communityID, name)
	if ignoreCategoryID > 0 {
		q = q.Where("id <> ?", ignoreCategoryID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) Update(id uint64, fields map[string]any) (bool, error) {
	res := r.DB.Model(&model.Category{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *CategoryRepository) Delete(id uint64) (bool, error) {
	res := r.DB.Delete(&model.Category{}, id)
	return res.RowsAffected > 0, res.Error
}

// CategoryIDs resolves a community to the ids of its categories, used when
// filtering posts by community.
func (r *CategoryRepository) CategoryIDs(communityID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.Category{}).
		Where("community_id = ?", communityID).
		Pluck("id", &ids).Error
	return ids, err
}

// MigratePosts moves every post of one category into another.
func (r *CategoryRepository) MigratePosts(fromCategoryID, toCategoryID uint64) (int64, error) {
	res := r.DB.Model(&model.Post{}).
		Where("category_id = ?", fromCategoryID).
		Update("category_id", toCategoryID)
	return res.RowsAffected, res.Error
}
