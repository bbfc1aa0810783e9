package mysql

import (
	"context"

	"seedy/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.DB.WithContext(ctx).Create(message).Error
}

// HistoryByCommunity returns a community's full chat history oldest-first
// with the sender attached.
func (r *MessageRepository) HistoryByCommunity(ctx context.Context, communityID uint64) ([]model.Message, error) {
	var list []model.Message
	err := r.DB.WithContext(ctx).
		Where("community_id = ?", communityID).
		Preload("User").
		Order("created_at").
		Find(&list).Error
	return list, err
}
