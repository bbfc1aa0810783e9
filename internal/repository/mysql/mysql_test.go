package mysql

import (
	"testing"

	"seedy/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Community{},
		&model.UserCommunity{},
		&model.Category{},
		&model.Post{},
		&model.Comment{},
		&model.PostReaction{},
		&model.CommentReaction{},
		&model.Plant{},
		&model.UserPlant{},
		&model.Message{},
		&model.CommunityOutbox{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := (&RoleRepository{DB: db}).Seed(); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createCommunity(t *testing.T, db *gorm.DB, name string) *model.Community {
	t.Helper()
	community := &model.Community{Name: name, Description: "d", Picture: "p.png"}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("create community %s: %v", name, err)
	}
	return community
}

func createPostFixture(t *testing.T, db *gorm.DB) (*model.User, *model.Community, *model.Category, *model.Post) {
	t.Helper()
	user := createUser(t, db, "author")
	community := createCommunity(t, db, "gardeners")
	category := &model.Category{CommunityID: community.ID, Name: "general", Description: "d"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	post := &model.Post{CategoryID: category.ID, UserID: user.ID, Title: "t", Content: "c"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return user, community, category, post
}

func roleID(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()
	role, err := (&RoleRepository{DB: db}).FindByName(name)
	if err != nil {
		t.Fatalf("find role %s: %v", name, err)
	}
	return role.ID
}
