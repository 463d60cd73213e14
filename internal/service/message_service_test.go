package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "commune/internal/errors"
	"commune/internal/model"
)

// MockMessageRepository is a mock implementation of MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *model.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func TestMessageService_Send(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	receiver := &model.User{ID: receiverID, Username: "bob"}

	tests := []struct {
		name          string
		setupMock     func(*MockMessageRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "successful send",
			setupMock: func(mm *MockMessageRepository, mu *MockUserRepository) {
				mu.On("FindByID", mock.Anything, receiverID).Return(receiver, nil)
				mm.On("Create", mock.Anything, mock.AnythingOfType("*model.Message")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "unknown receiver",
			setupMock: func(mm *MockMessageRepository, mu *MockUserRepository) {
				mu.On("FindByID", mock.Anything, receiverID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMessages := new(MockMessageRepository)
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockMessages, mockUsers)

			svc := NewMessageService(mockMessages, mockUsers)
			message, err := svc.Send(context.Background(), senderID, receiverID, "hello bob")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, message)
				mockMessages.AssertNotCalled(t, "Create")
			} else {
				assert.NoError(t, err)
				// sender comes from the verified caller, receiver from the request
				assert.Equal(t, senderID, message.SenderID)
				assert.Equal(t, receiverID, message.ReceiverID)
			}

			mockMessages.AssertExpectations(t)
			mockUsers.AssertExpectations(t)
		})
	}
}
