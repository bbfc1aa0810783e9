package service

import (
	"context"

	"seedy/internal/model"
	"seedy/internal/repository/mysql"
)

type ChatService struct {
	repo *mysql.MessageRepository
}

func NewChatService(repo *mysql.MessageRepository) *ChatService {
	return &ChatService{repo: repo}
}

// SaveMessage persists an incoming chat message and returns the stored row,
// whose id and creation timestamp the relay echoes back to the room.
func (s *ChatService) SaveMessage(ctx context.Context, userID, communityID uint64, text string) (*model.Message, error) {
	var fields []string
	if text == "" {
		fields = append(fields, "text")
	}
	if communityID == 0 {
		fields = append(fields, "community_id")
	}
	if userID == 0 {
		fields = append(fields, "user")
	}
	if len(fields) > 0 {
		return nil, missing(fields...)
	}
	message := &model.Message{CommunityID: communityID, UserID: userID, Text: text}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ChatService) History(ctx context.Context, communityID uint64) ([]model.Message, error) {
	return s.repo.HistoryByCommunity(ctx, communityID)
}
