package mysql

import (
	"encoding/json"
	"errors"
	"time"

	"seedy/internal/model"

	"gorm.io/gorm"
)

type MemberRepository struct {
	DB *gorm.DB
}

// AssignRole upserts the membership row for (user, community): an existing
// row gets its role_id updated, otherwise a new row is inserted. The matching
// outbox event (join or role_change) is written in the same transaction.
func (r *MemberRepository) AssignRole(userID, communityID, roleID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var membership model.UserCommunity
		err := tx.Where("user_id = ? AND community_id = ?", userID, communityID).
			First(&membership).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			membership = model.UserCommunity{
				UserID:      userID,
				CommunityID: communityID,
				RoleID:      roleID,
				Status:      "active",
			}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
			return insertOutbox(tx, "join", communityID, userID, roleID)
		}
		if err != nil {
			return err
		}
		if membership.RoleID == roleID {
			return nil
		}
		if err := tx.Model(&model.UserCommunity{}).
			Where("id = ?", membership.ID).
			Update("role_id", roleID).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "role_change", communityID, userID, roleID)
	})
}

func (r *MemberRepository) Find(userID, communityID uint64) (*model.UserCommunity, error) {
	var membership model.UserCommunity
	err := r.DB.Where("user_id = ? AND community_id = ?", userID, communityID).
		First(&membership).Error
	return &membership, err
}

// RoleOf returns the caller's role row in a community, or
// gorm.ErrRecordNotFound when no membership exists.
func (r *MemberRepository) RoleOf(userID, communityID uint64) (*model.Role, error) {
	membership, err := r.Find(userID, communityID)
	if err != nil {
		return nil, err
	}
	var role model.Role
	err = r.DB.First(&role, membership.RoleID).Error
	return &role, err
}

func (r *MemberRepository) Remove(userID, communityID uint64) (bool, error) {
	var removed bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND community_id = ?", userID, communityID).
			Delete(&model.UserCommunity{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return insertOutbox(tx, "leave", communityID, userID, 0)
	})
	return removed, err
}

func insertOutbox(tx *gorm.DB, event string, communityID, userID, roleID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time":   time.Now().UTC().Format(time.RFC3339Nano),
		"community_id": communityID,
		"user_id":      userID,
		"role_id":      roleID,
	})
	ob := &model.CommunityOutbox{
		EventType:   event,
		CommunityID: communityID,
		UserID:      userID,
		Payload:     string(payload),
		Status:      0,
	}
	return tx.Create(ob).Error
}
