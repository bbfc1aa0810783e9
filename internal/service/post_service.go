package service

import (
	"errors"

	"seedy/internal/model"
	"seedy/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	repo         *mysql.PostRepository
	categoryRepo *mysql.CategoryRepository
	memberRepo   *mysql.MemberRepository
}

func NewPostService(repo *mysql.PostRepository, categoryRepo *mysql.CategoryRepository, memberRepo *mysql.MemberRepository) *PostService {
	return &PostService{repo: repo, categoryRepo: categoryRepo, memberRepo: memberRepo}
}

// List pages posts newest-first, filtered by one category when categoryID is
// set, otherwise by every category of the community.
func (s *PostService) List(communityID, categoryID uint64, page, limit int) ([]model.Post, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	var categoryIDs []uint64
	if categoryID > 0 {
		categoryIDs = []uint64{categoryID}
	} else {
		ids, err := s.categoryRepo.CategoryIDs(communityID)
		if err != nil {
			return nil, 0, err
		}
		categoryIDs = ids
	}
	if len(categoryIDs) == 0 {
		return nil, 0, notFound("No posts found.")
	}

	list, total, err := s.repo.ListByCategories(categoryIDs, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, notFound("No posts found.")
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return list, totalPages, nil
}

func (s *PostService) Get(postID uint64) (*model.Post, error) {
	if postID == 0 {
		return nil, missing("post_id")
	}
	post, err := s.repo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Post not found")
		}
		return nil, err
	}
	return post, nil
}

// Create writes a post authored by the caller into a category the caller's
// community membership covers.
func (s *PostService) Create(authorID, categoryID uint64, title, content string) (*model.Post, error) {
	var fields []string
	if title == "" {
		fields = append(fields, "title")
	}
	if content == "" {
		fields = append(fields, "body")
	}
	if categoryID == 0 {
		fields = append(fields, "category_id")
	}
	if len(fields) > 0 {
		return nil, missing(fields...)
	}

	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		return nil, notFound("Category not found")
	}
	if _, err := s.memberRepo.Find(authorID, category.CommunityID); err != nil {
		return nil, forbidden("You must be a member of the community to post.")
	}

	post := &model.Post{CategoryID: categoryID, UserID: authorID, Title: title, Content: content}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Edit allows the author; Delete additionally allows community moderators
// and the founder.
func (s *PostService) Edit(callerID, postID uint64, title, content string) error {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		return notFound("Post not found")
	}
	if post.UserID != callerID {
		return forbidden("You don't have the necessary permissions to do that.")
	}
	fields := map[string]any{}
	if title != "" {
		fields["title"] = title
	}
	if content != "" {
		fields["content"] = content
	}
	if len(fields) == 0 {
		return nil
	}
	_, err = s.repo.Update(postID, fields)
	return err
}

func (s *PostService) Delete(callerID, postID uint64) error {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		return notFound("Post not found")
	}
	if post.UserID != callerID {
		communityID, err := s.repo.CommunityOf(postID)
		if err != nil {
			return err
		}
		role, err := s.memberRepo.RoleOf(callerID, communityID)
		if err != nil || (role.Name != model.RoleFounder && role.Name != model.RoleModerator) {
			return forbidden("You don't have the necessary permissions to do that.")
		}
	}
	_, err = s.repo.Delete(postID)
	return err
}
