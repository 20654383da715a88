package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tabletoprpg/internal/errors"
	"tabletoprpg/internal/model"
)

func TestUserService_DeleteUser(t *testing.T) {
	userID := uuid.New()
	user := func() *model.User {
		return &model.User{ID: userID, Username: "player_marco"}
	}

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository, *MockCampaignRepository, *MockCharacterRepository, *MockJournalRepository)
		expectedError error
	}{
		{
			name: "unreferenced account deletes",
			setupMock: func(uRepo *MockUserRepository, campRepo *MockCampaignRepository, charRepo *MockCharacterRepository, jRepo *MockJournalRepository) {
				uRepo.On("FindByID", mock.Anything, userID).Return(user(), nil)
				campRepo.On("ExistsByGM", mock.Anything, userID).Return(false, nil)
				charRepo.On("ExistsByOwner", mock.Anything, userID).Return(false, nil)
				jRepo.On("ExistsByAuthor", mock.Anything, userID).Return(false, nil)
				uRepo.On("Delete", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "blocked while running a campaign",
			setupMock: func(uRepo *MockUserRepository, campRepo *MockCampaignRepository, charRepo *MockCharacterRepository, jRepo *MockJournalRepository) {
				uRepo.On("FindByID", mock.Anything, userID).Return(user(), nil)
				campRepo.On("ExistsByGM", mock.Anything, userID).Return(true, nil)
			},
			expectedError: errors.ErrUserOwnsCampaign,
		},
		{
			name: "blocked while owning characters",
			setupMock: func(uRepo *MockUserRepository, campRepo *MockCampaignRepository, charRepo *MockCharacterRepository, jRepo *MockJournalRepository) {
				uRepo.On("FindByID", mock.Anything, userID).Return(user(), nil)
				campRepo.On("ExistsByGM", mock.Anything, userID).Return(false, nil)
				charRepo.On("ExistsByOwner", mock.Anything, userID).Return(true, nil)
			},
			expectedError: errors.ErrUserOwnsCharacter,
		},
		{
			name: "blocked while journal entries remain",
			setupMock: func(uRepo *MockUserRepository, campRepo *MockCampaignRepository, charRepo *MockCharacterRepository, jRepo *MockJournalRepository) {
				uRepo.On("FindByID", mock.Anything, userID).Return(user(), nil)
				campRepo.On("ExistsByGM", mock.Anything, userID).Return(false, nil)
				charRepo.On("ExistsByOwner", mock.Anything, userID).Return(false, nil)
				jRepo.On("ExistsByAuthor", mock.Anything, userID).Return(true, nil)
			},
			expectedError: errors.ErrUserAuthoredJournal,
		},
		{
			name: "unknown user",
			setupMock: func(uRepo *MockUserRepository, campRepo *MockCampaignRepository, charRepo *MockCharacterRepository, jRepo *MockJournalRepository) {
				uRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			campaignRepo := new(MockCampaignRepository)
			characterRepo := new(MockCharacterRepository)
			journalRepo := new(MockJournalRepository)
			tt.setupMock(userRepo, campaignRepo, characterRepo, journalRepo)

			service := NewUserService(userRepo, campaignRepo, characterRepo, journalRepo, nil)
			err := service.DeleteUser(context.Background(), userID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Username: "gm_elena"}, nil)

		service := NewUserService(userRepo, new(MockCampaignRepository), new(MockCharacterRepository), new(MockJournalRepository), nil)
		user, err := service.GetUser(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, "gm_elena", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(userRepo, new(MockCampaignRepository), new(MockCharacterRepository), new(MockJournalRepository), nil)
		_, err := service.GetUser(context.Background(), userID)
		assert.Equal(t, errors.ErrUserNotFound, err)
	})
}
