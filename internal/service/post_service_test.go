package service

import (
	"context"
	"errors"
	"testing"

	"seedy/internal/model"
	"seedy/internal/repository/mysql"

	"gorm.io/gorm"
)

type forumFixture struct {
	categories  *CategoryService
	posts       *PostService
	comments    *CommentService
	reactions   *ReactionService
	founder     uint64
	member      uint64
	outsider    uint64
	communityID uint64
	categoryID  uint64
}

func setupForum(t *testing.T, db *gorm.DB) *forumFixture {
	t.Helper()
	users := newUserService(db, nil)
	communities := newCommunityService(db)
	ctx := context.Background()

	f := &forumFixture{
		categories: NewCategoryService(&mysql.CategoryRepository{DB: db}, &mysql.MemberRepository{DB: db}),
		posts:      NewPostService(&mysql.PostRepository{DB: db}, &mysql.CategoryRepository{DB: db}, &mysql.MemberRepository{DB: db}),
		comments:   NewCommentService(&mysql.CommentRepository{DB: db}, &mysql.PostRepository{DB: db}),
		reactions:  NewReactionService(&mysql.ReactionRepository{DB: db}, &mysql.PostRepository{DB: db}, &mysql.CommentRepository{DB: db}),
	}
	f.founder = seedUser(t, users, "founder")
	f.member = seedUser(t, users, "member")
	f.outsider = seedUser(t, users, "outsider")

	community, err := communities.Create(ctx, f.founder, "growers", "d", "p.png")
	if err != nil {
		t.Fatalf("create community: %v", err)
	}
	f.communityID = community.ID
	if err := communities.AssignRole(ctx, f.member, community.ID, f.member, model.RoleMember); err != nil {
		t.Fatalf("join: %v", err)
	}

	category, err := f.categories.Create(community.ID, "general", "talk")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	f.categoryID = category.ID
	return f
}

func TestCreatePostRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)

	_, err := f.posts.Create(f.outsider, f.categoryID, "title", "body")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider post = %v, want forbidden", err)
	}

	post, err := f.posts.Create(f.member, f.categoryID, "title", "body")
	if err != nil {
		t.Fatalf("member post: %v", err)
	}
	if post.ID == 0 {
		t.Error("post has no id")
	}
}

func TestEditPostAuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)

	post, err := f.posts.Create(f.member, f.categoryID, "title", "body")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = f.posts.Edit(f.founder, post.ID, "hijacked", "")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-author edit = %v, want forbidden", err)
	}

	if err := f.posts.Edit(f.member, post.ID, "fixed title", ""); err != nil {
		t.Fatalf("author edit: %v", err)
	}
	got, err := f.posts.Get(post.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "fixed title" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Content != "body" {
		t.Errorf("content changed to %q on a title-only edit", got.Content)
	}
}

func TestDeletePostModeratorOverride(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)

	post, err := f.posts.Create(f.member, f.categoryID, "title", "body")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = f.posts.Delete(f.outsider, post.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider delete = %v, want forbidden", err)
	}
	// the founder may delete someone else's post
	if err := f.posts.Delete(f.founder, post.ID); err != nil {
		t.Fatalf("founder delete: %v", err)
	}
	_, err = f.posts.Get(post.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want not found", err)
	}
}

func TestListPostsPagination(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)

	for i := 0; i < 7; i++ {
		if _, err := f.posts.Create(f.member, f.categoryID, "post", "body"); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	list, totalPages, err := f.posts.List(f.communityID, 0, 1, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 5 || totalPages != 2 {
		t.Errorf("page 1 = (%d rows, %d pages), want (5, 2)", len(list), totalPages)
	}

	list, _, err = f.posts.List(0, f.categoryID, 2, 5)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("page 2 = %d rows, want 2", len(list))
	}
}

func TestListPostsEmpty(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)

	_, _, err := f.posts.List(f.communityID, 0, 1, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("empty list = %v, want not found", err)
	}
}

func TestCommentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)
	ctx := context.Background()

	post, err := f.posts.Create(f.member, f.categoryID, "title", "body")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comment, err := f.comments.Create(f.founder, post.ID, "nice")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if _, err := f.reactions.ReactToComment(ctx, f.member, comment.ID, model.ReactionLike); err != nil {
		t.Fatalf("react: %v", err)
	}
	comments, err := f.comments.ListWithReactions(post.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(comments))
	}
	if len(comments[0].Reactions) != 1 {
		t.Errorf("reactions on comment = %d, want 1", len(comments[0].Reactions))
	}

	err = f.comments.Delete(f.member, comment.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-author comment delete = %v, want forbidden", err)
	}
	if err := f.comments.Delete(f.founder, comment.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
}

func TestReactionValidatesType(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)
	ctx := context.Background()

	post, err := f.posts.Create(f.member, f.categoryID, "title", "body")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.reactions.ReactToPost(ctx, f.member, post.ID, "love")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("bad type = %v, want validation", err)
	}
	_, err = f.reactions.ReactToPost(ctx, f.member, post.ID+99, model.ReactionLike)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing post = %v, want not found", err)
	}
}

func TestMigratePosts(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)

	other, err := f.categories.Create(f.communityID, "offtopic", "d")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := f.posts.Create(f.member, f.categoryID, "post", "body"); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	// plain members cannot migrate
	_, err = f.categories.MigratePosts(f.member, f.categoryID, other.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("member migrate = %v, want forbidden", err)
	}

	moved, err := f.categories.MigratePosts(f.founder, f.categoryID, other.ID)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if moved != 3 {
		t.Errorf("moved = %d, want 3", moved)
	}

	var count int64
	db.Model(&model.Post{}).Where("category_id = ?", other.ID).Count(&count)
	if count != 3 {
		t.Errorf("posts in target category = %d, want 3", count)
	}
}

func TestCategoryNameUniquePerCommunity(t *testing.T) {
	db := setupTestDB(t)
	f := setupForum(t, db)

	_, err := f.categories.Create(f.communityID, "General", "d")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("case-insensitive duplicate = %v, want conflict", err)
	}

	// the same name in another community is fine
	users := newUserService(db, nil)
	communities := newCommunityService(db)
	founder2 := seedUser(t, users, "founder2")
	other, err := communities.Create(context.Background(), founder2, "foragers", "d", "p.png")
	if err != nil {
		t.Fatalf("create community: %v", err)
	}
	if _, err := f.categories.Create(other.ID, "general", "d"); err != nil {
		t.Errorf("same name in other community = %v, want nil", err)
	}
}
