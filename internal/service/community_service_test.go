package service

import (
	"context"
	"errors"
	"testing"

	"seedy/internal/model"
	"seedy/internal/repository/mysql"
)

func seedUser(t *testing.T, svc *UserService, username string) uint64 {
	t.Helper()
	if err := svc.Register(username, username+"@example.com", "pass", ""); err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	_, user, err := svc.Login(username, "pass")
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return user.ID
}

func TestCreateCommunityAssignsFounder(t *testing.T) {
	db := setupTestDB(t)
	users := newUserService(db, nil)
	svc := newCommunityService(db)
	ctx := context.Background()

	creator := seedUser(t, users, "ana")
	community, err := svc.Create(ctx, creator, "growers", "plant people", "pic.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	role, err := svc.GetUserRole(community.ID, creator)
	if err != nil {
		t.Fatalf("get role: %v", err)
	}
	if role.Name != model.RoleFounder {
		t.Errorf("creator role = %q, want founder", role.Name)
	}
}

func TestCreateCommunityDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	users := newUserService(db, nil)
	svc := newCommunityService(db)
	ctx := context.Background()

	creator := seedUser(t, users, "ana")
	if _, err := svc.Create(ctx, creator, "growers", "d", "p.png"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, creator, "growers", "d", "p.png")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate create = %v, want conflict", err)
	}
}

func TestAssignRoleAuthorization(t *testing.T) {
	db := setupTestDB(t)
	users := newUserService(db, nil)
	svc := newCommunityService(db)
	ctx := context.Background()

	founder := seedUser(t, users, "founder")
	outsider := seedUser(t, users, "outsider")
	target := seedUser(t, users, "target")

	community, err := svc.Create(ctx, founder, "growers", "d", "p.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// a non-member cannot hand out roles
	err = svc.AssignRole(ctx, outsider, community.ID, target, model.RoleModerator)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider grant = %v, want forbidden", err)
	}

	// joining yourself as a plain member is the one exception
	if err := svc.AssignRole(ctx, outsider, community.ID, outsider, model.RoleMember); err != nil {
		t.Errorf("self join = %v, want nil", err)
	}

	// but a plain member still cannot promote others
	err = svc.AssignRole(ctx, outsider, community.ID, target, model.RoleModerator)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("member grant = %v, want forbidden", err)
	}

	// the founder can
	if err := svc.AssignRole(ctx, founder, community.ID, target, model.RoleModerator); err != nil {
		t.Errorf("founder grant = %v, want nil", err)
	}

	// and a fresh moderator can grant too
	if err := svc.AssignRole(ctx, target, community.ID, outsider, model.RoleModerator); err != nil {
		t.Errorf("moderator grant = %v, want nil", err)
	}
}

func TestAssignRoleTwiceLastWins(t *testing.T) {
	db := setupTestDB(t)
	users := newUserService(db, nil)
	svc := newCommunityService(db)
	ctx := context.Background()

	founder := seedUser(t, users, "founder")
	target := seedUser(t, users, "target")
	community, err := svc.Create(ctx, founder, "growers", "d", "p.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.AssignRole(ctx, founder, community.ID, target, model.RoleMember); err != nil {
		t.Fatalf("first grant: %v", err)
	}
	if err := svc.AssignRole(ctx, founder, community.ID, target, model.RoleModerator); err != nil {
		t.Fatalf("second grant: %v", err)
	}

	var rows []model.UserCommunity
	db.Where("user_id = ? AND community_id = ?", target, community.ID).Find(&rows)
	if len(rows) != 1 {
		t.Fatalf("membership rows = %d, want 1", len(rows))
	}
	role, err := svc.GetUserRole(community.ID, target)
	if err != nil {
		t.Fatalf("get role: %v", err)
	}
	if role.Name != model.RoleModerator {
		t.Errorf("role = %q, want moderator", role.Name)
	}
}

func TestAssignRoleUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	users := newUserService(db, nil)
	svc := newCommunityService(db)
	ctx := context.Background()

	founder := seedUser(t, users, "founder")
	community, err := svc.Create(ctx, founder, "growers", "d", "p.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	err = svc.AssignRole(ctx, founder, community.ID, founder, "galactic_emperor")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown role = %v, want not found", err)
	}
}

func TestDeleteCommunityRequiresFounder(t *testing.T) {
	db := setupTestDB(t)
	users := newUserService(db, nil)
	svc := newCommunityService(db)
	ctx := context.Background()

	founder := seedUser(t, users, "founder")
	member := seedUser(t, users, "member")
	community, err := svc.Create(ctx, founder, "growers", "d", "p.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AssignRole(ctx, member, community.ID, member, model.RoleMember); err != nil {
		t.Fatalf("join: %v", err)
	}

	err = svc.Delete(ctx, member, community.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("member delete = %v, want forbidden", err)
	}
	if err := svc.Delete(ctx, founder, community.ID); err != nil {
		t.Errorf("founder delete = %v, want nil", err)
	}

	var count int64
	db.Model(&model.Community{}).Count(&count)
	if count != 0 {
		t.Errorf("communities remaining = %d, want 0", count)
	}
}

func TestListIncludesMemberCounts(t *testing.T) {
	db := setupTestDB(t)
	users := newUserService(db, nil)
	svc := newCommunityService(db)
	ctx := context.Background()

	founder := seedUser(t, users, "founder")
	joiner := seedUser(t, users, "joiner")
	community, err := svc.Create(ctx, founder, "growers", "d", "p.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AssignRole(ctx, joiner, community.ID, joiner, model.RoleMember); err != nil {
		t.Fatalf("join: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("communities = %d, want 1", len(list))
	}
	if list[0].UserCount != 2 {
		t.Errorf("userCount = %d, want 2", list[0].UserCount)
	}
}

func TestRemoveMember(t *testing.T) {
	db := setupTestDB(t)
	users := newUserService(db, nil)
	svc := newCommunityService(db)
	ctx := context.Background()

	founder := seedUser(t, users, "founder")
	joiner := seedUser(t, users, "joiner")
	community, err := svc.Create(ctx, founder, "growers", "d", "p.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AssignRole(ctx, joiner, community.ID, joiner, model.RoleMember); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := svc.RemoveMember(ctx, joiner, community.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	err = svc.RemoveMember(ctx, joiner, community.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove = %v, want not found", err)
	}

	memberRepo := &mysql.MemberRepository{DB: db}
	if _, err := memberRepo.Find(joiner, community.ID); err == nil {
		t.Error("membership row still present after removal")
	}
}
