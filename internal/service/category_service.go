package service

import (
	"errors"

	"seedy/internal/model"
	"seedy/internal/repository/mysql"

	"gorm.io/gorm"
)

type CategoryService struct {
	repo       *mysql.CategoryRepository
	memberRepo *mysql.MemberRepository
}

func NewCategoryService(repo *mysql.CategoryRepository, memberRepo *mysql.MemberRepository) *CategoryService {
	return &CategoryService{repo: repo, memberRepo: memberRepo}
}

// List pages a community's categories newest-first and reports total pages.
func (s *CategoryService) List(communityID uint64, page, limit int) ([]model.Category, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	list, total, err := s.repo.ListByCommunity(communityID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, notFound("No categories found for this community.")
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return list, totalPages, nil
}

func (s *CategoryService) CheckName(communityID uint64, name string, ignoreCategoryID uint64) error {
	if name == "" {
		return missing("name")
	}
	taken, err := s.repo.NameTaken(communityID, name, ignoreCategoryID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("Category name already exists")
	}
	return nil
}

func (s *CategoryService) Create(communityID uint64, name, description string) (*model.Category, error) {
	var fields []string
	if communityID == 0 {
		fields = append(fields, "community_id")
	}
	if name == "" {
		fields = append(fields, "name")
	}
	if description == "" {
		fields = append(fields, "description")
	}
	if len(fields) > 0 {
		return nil, missing(fields...)
	}

	taken, err := s.repo.NameTaken(communityID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("A category with this name already exists in the community")
	}

	category := &model.Category{CommunityID: communityID, Name: name, Description: description}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Edit renames a category, keeping the per-community case-insensitive
// uniqueness intact.
func (s *CategoryService) Edit(categoryID uint64, name, description string) error {
	category, err := s.repo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Category not found")
		}
		return err
	}
	fields := map[string]any{}
	if name != "" {
		taken, err := s.repo.NameTaken(category.CommunityID, name, categoryID)
		if err != nil {
			return err
		}
		if taken {
			return conflict("A category with this name already exists in the community")
		}
		fields["name"] = name
	}
	if description != "" {
		fields["description"] = description
	}
	if len(fields) == 0 {
		return nil
	}
	_, err = s.repo.Update(categoryID, fields)
	return err
}

// Delete requires moderator or founder in the owning community; posts go
// with the category through the FK cascade.
func (s *CategoryService) Delete(callerID, categoryID uint64) error {
	category, err := s.repo.FindByID(categoryID)
	if err != nil {
		return notFound("Category not found")
	}
	if err := s.requireModerator(callerID, category.CommunityID); err != nil {
		return err
	}
	_, err = s.repo.Delete(categoryID)
	return err
}

// MigratePosts moves all posts from one category to another within the same
// community.
func (s *CategoryService) MigratePosts(callerID, fromCategoryID, toCategoryID uint64) (int64, error) {
	if fromCategoryID == 0 || toCategoryID == 0 {
		return 0, missing("from_category_id", "to_category_id")
	}
	from, err := s.repo.FindByID(fromCategoryID)
	if err != nil {
		return 0, notFound("Category not found")
	}
	to, err := s.repo.FindByID(toCategoryID)
	if err != nil {
		return 0, notFound("Category not found")
	}
	if from.CommunityID != to.CommunityID {
		return 0, invalid("Categories belong to different communities")
	}
	if err := s.requireModerator(callerID, from.CommunityID); err != nil {
		return 0, err
	}
	return s.repo.MigratePosts(fromCategoryID, toCategoryID)
}

func (s *CategoryService) requireModerator(callerID, communityID uint64) error {
	role, err := s.memberRepo.RoleOf(callerID, communityID)
	if err != nil || (role.Name != model.RoleFounder && role.Name != model.RoleModerator) {
		return forbidden("You don't have the necessary permissions to do that.")
	}
	return nil
}
