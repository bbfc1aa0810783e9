package service

import (
	"testing"
	"time"

	"seedy/internal/model"
	"seedy/internal/pkg"
	"seedy/internal/repository/mysql"

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
	if err := (&mysql.RoleRepository{DB: db}).Seed(); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return db
}

type sentMail struct {
	to, subject, body string
}

// captureMailer records dispatches instead of talking SMTP.
func captureMailer(sent *[]sentMail) Mailer {
	return func(to, subject, htmlBody string) error {
		if sent != nil {
			*sent = append(*sent, sentMail{to, subject, htmlBody})
		}
		return nil
	}
}

func newUserService(db *gorm.DB, sent *[]sentMail) *UserService {
	tokens := pkg.NewTokenIssuer("test-secret", time.Hour)
	return NewUserService(&mysql.UserRepository{DB: db}, tokens, captureMailer(sent))
}

func newCommunityService(db *gorm.DB) *CommunityService {
	return NewCommunityService(
		&mysql.CommunityRepository{DB: db},
		&mysql.MemberRepository{DB: db},
		&mysql.RoleRepository{DB: db},
		nil, nil,
	)
}
