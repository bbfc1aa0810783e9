package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"seedy/internal/model"
	"seedy/internal/repository/mysql"
	"seedy/internal/repository/redis"

	"gorm.io/gorm"
)

// CommunityWithCount is the listing projection: community plus the number of
// membership rows pointing at it.
type CommunityWithCount struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
	UserCount   int64  `json:"userCount"`
}

type CommunityService struct {
	repo       *mysql.CommunityRepository
	memberRepo *mysql.MemberRepository
	roleRepo   *mysql.RoleRepository
	countCache *redis.MemberCountCache
	lock       *redis.DistLock
}

func NewCommunityService(repo *mysql.CommunityRepository, memberRepo *mysql.MemberRepository, roleRepo *mysql.RoleRepository, countCache *redis.MemberCountCache, lock *redis.DistLock) *CommunityService {
	return &CommunityService{
		repo:       repo,
		memberRepo: memberRepo,
		roleRepo:   roleRepo,
		countCache: countCache,
		lock:       lock,
	}
}

// List returns every community with its member count. No pagination.
func (s *CommunityService) List(ctx context.Context) ([]CommunityWithCount, error) {
	communities, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]CommunityWithCount, 0, len(communities))
	for _, c := range communities {
		count, err := s.memberCount(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, CommunityWithCount{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Picture:     c.Picture,
			UserCount:   count,
		})
	}
	return out, nil
}

// memberCount reads through the cache; on a miss the rebuild runs under a
// short lock so a hot community does not stampede the database. Losing the
// lock race falls back to an uncached read.
func (s *CommunityService) memberCount(ctx context.Context, communityID uint64) (int64, error) {
	if s.countCache == nil {
		return s.repo.MemberCount(communityID)
	}
	if v, hit, err := s.countCache.Get(ctx, communityID); err == nil && hit {
		return v, nil
	}

	token := fmt.Sprintf("%d-%d", communityID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, communityID, token)
	if got {
		defer func() {
			if err := s.lock.Release(ctx, communityID, token); err != nil {
				log.Printf("member count lock release: %v", err)
			}
		}()
		if v, hit, err := s.countCache.Get(ctx, communityID); err == nil && hit {
			return v, nil
		}
		v, err := s.repo.MemberCount(communityID)
		if err != nil {
			return 0, err
		}
		_ = s.countCache.Set(ctx, communityID, v)
		return v, nil
	}
	return s.repo.MemberCount(communityID)
}

func (s *CommunityService) CheckName(name string, ignoreCommunityID uint64) error {
	if name == "" {
		return missing("name")
	}
	taken, err := s.repo.NameTaken(name, ignoreCommunityID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("Community name already exists")
	}
	return nil
}

// Create registers the community and makes its creator the founder in the
// same breath.
func (s *CommunityService) Create(ctx context.Context, creatorID uint64, name, description, picture string) (*model.Community, error) {
	var fields []string
	if name == "" {
		fields = append(fields, "name")
	}
	if description == "" {
		fields = append(fields, "description")
	}
	if picture == "" {
		fields = append(fields, "picture")
	}
	if len(fields) > 0 {
		return nil, missing(fields...)
	}

	taken, err := s.repo.NameTaken(name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("Community name already exists")
	}

	founder, err := s.roleRepo.FindByName(model.RoleFounder)
	if err != nil {
		return nil, err
	}
	community := &model.Community{Name: name, Description: description, Picture: picture}
	if err := s.repo.Create(community); err != nil {
		return nil, err
	}
	if err := s.memberRepo.AssignRole(creatorID, community.ID, founder.ID); err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, community.ID)
	return community, nil
}

// Delete requires the caller to hold founder or system-administrator role in
// the community.
func (s *CommunityService) Delete(ctx context.Context, callerID, communityID uint64) error {
	role, err := s.memberRepo.RoleOf(callerID, communityID)
	if err != nil || (role.Name != model.RoleFounder && role.Name != model.RoleSysAdmin) {
		return forbidden("You don't have the necessary permissions to do that.")
	}
	deleted, err := s.repo.Delete(communityID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("Community not found")
	}
	s.invalidateCount(ctx, communityID)
	return nil
}

// AssignRole resolves the role name and upserts the membership. The caller
// must be a founder or moderator of the community; the one exception is a
// user granting themselves plain membership (joining).
func (s *CommunityService) AssignRole(ctx context.Context, callerID, communityID, userID uint64, roleName string) error {
	if userID == 0 || roleName == "" {
		return missing("user_id", "role_name")
	}
	role, err := s.roleRepo.FindByName(roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Role not found")
		}
		return err
	}

	selfJoin := callerID == userID && roleName == model.RoleMember
	if !selfJoin {
		callerRole, err := s.memberRepo.RoleOf(callerID, communityID)
		if err != nil || (callerRole.Name != model.RoleFounder && callerRole.Name != model.RoleModerator) {
			return forbidden("You don't have the necessary permissions to do that.")
		}
	}

	if err := s.memberRepo.AssignRole(userID, communityID, role.ID); err != nil {
		return err
	}
	s.invalidateCount(ctx, communityID)
	return nil
}

func (s *CommunityService) GetUserRole(communityID, userID uint64) (*model.Role, error) {
	if communityID == 0 || userID == 0 {
		return nil, missing("user_id", "community_id")
	}
	membership, err := s.memberRepo.Find(userID, communityID)
	if err != nil {
		return nil, notFound("This user has no role in that community")
	}
	role, err := s.roleRepo.FindByID(membership.RoleID)
	if err != nil {
		return nil, notFound("Role not found")
	}
	return role, nil
}

func (s *CommunityService) RemoveMember(ctx context.Context, userID, communityID uint64) error {
	removed, err := s.memberRepo.Remove(userID, communityID)
	if err != nil {
		return err
	}
	if !removed {
		return notFound("This user has no role in that community")
	}
	s.invalidateCount(ctx, communityID)
	return nil
}

func (s *CommunityService) ChangeImage(communityID uint64, picture string) error {
	if communityID == 0 || picture == "" {
		return missing("community_id", "picture")
	}
	updated, err := s.repo.UpdatePicture(communityID, picture)
	if err != nil {
		return err
	}
	if !updated {
		return notFound(fmt.Sprintf("Community not found (id:%d)", communityID))
	}
	return nil
}

func (s *CommunityService) GetMembers(communityID uint64) ([]model.Member, error) {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return nil, notFound("Community not found.")
	}
	return s.repo.Members(communityID)
}

func (s *CommunityService) invalidateCount(ctx context.Context, communityID uint64) {
	if s.countCache == nil {
		return
	}
	if err := s.countCache.Invalidate(ctx, communityID); err != nil {
		log.Printf("member count invalidate: %v", err)
	}
}
