package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "commune/internal/errors"
	"commune/internal/model"
	"commune/internal/repository"
)

// MessageService handles direct messages.
type MessageService interface {
	// Send stores a message from the verified caller to the receiver.
	Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*model.Message, error)
	// ListForUser returns messages sent or received by the user.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Message, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

// NewMessageService creates a message service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) MessageService {
	return &messageService{messages: messages, users: users}
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*model.Message, error) {
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find receiver: %w", err)
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return message, nil
}

func (s *messageService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	return s.messages.ListForUser(ctx, userID)
}
