package mysql

import (
	"seedy/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func (r *CommunityRepository) Create(c *model.Community) error {
	return r.DB.Create(c).Error
}

func (r *CommunityRepository) FindByID(id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, id).Error
	return &community, err
}

func (r *CommunityRepository) List() ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

func (r *CommunityRepository) NameTaken(name string, ignoreCommunityID uint64) (bool, error) {
	q := r.DB.Model(&model.Community{}).Where("name = ?", name)
	if ignoreCommunityID > 0 {
		q = q.Where("id <> ?", ignoreCommunityID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *CommunityRepository) UpdatePicture(id uint64, picture string) (bool, error) {
	res := r.DB.Model(&model.Community{}).Where("id = ?", id).
		Update("picture", picture)
	return res.RowsAffected > 0, res.Error
}

// Delete removes the community; categories, posts, memberships and messages
// go with it through the FK cascade.
func (r *CommunityRepository) Delete(id uint64) (bool, error) {
	res := r.DB.Delete(&model.Community{}, id)
	return res.RowsAffected > 0, res.Error
}

// MemberCount is the cache-miss source for the listing's per-community count.
func (r *CommunityRepository) MemberCount(communityID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserCommunity{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

// Members joins memberships with users and roles into the flattened
// projection the member listing returns.
func (r *CommunityRepository) Members(communityID uint64) ([]model.Member, error) {
	var members []model.Member
	err := r.DB.Model(&model.UserCommunity{}).
		Select("users.id, users.username, users.picture, roles.name AS role, roles.display_name AS role_display_name").
		Joins("JOIN users ON users.id = user_communities.user_id").
		Joins("JOIN roles ON roles.id = user_communities.role_id").
		Where("user_communities.community_id = ?", communityID).
		Order("users.id").
		Scan(&members).Error
	return members, err
}
