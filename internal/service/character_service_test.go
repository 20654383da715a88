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

func validAttributes() model.Attributes {
	return model.Attributes{
		Strength: 14, Dexterity: 12, Constitution: 13,
		Intelligence: 10, Wisdom: 11, Charisma: 8,
	}
}

func validCharacterCreate() CharacterCreate {
	return CharacterCreate{
		Name:       "Thorin",
		Class:      "Fighter",
		Race:       "Dwarf",
		Level:      3,
		HP:         24,
		MaxHP:      28,
		Attributes: validAttributes(),
	}
}

func TestCharacterService_CreateCharacter_Validation(t *testing.T) {
	campaignID := uuid.New()
	requesterID := uuid.New()

	tests := []struct {
		name          string
		mutate        func(*CharacterCreate)
		expectedError error
	}{
		{"blank name", func(r *CharacterCreate) { r.Name = "  " }, errors.ErrBlankCharacterName},
		{"blank class", func(r *CharacterCreate) { r.Class = "" }, errors.ErrBlankClass},
		{"blank race", func(r *CharacterCreate) { r.Race = "" }, errors.ErrBlankRace},
		{"level below one", func(r *CharacterCreate) { r.Level = 0 }, errors.ErrLevelTooLow},
		{"max hp below one", func(r *CharacterCreate) { r.MaxHP = 0 }, errors.ErrMaxHPTooLow},
		{"negative hp", func(r *CharacterCreate) { r.HP = -1 }, errors.ErrHPOutOfRange},
		{"hp above max", func(r *CharacterCreate) { r.HP = 29 }, errors.ErrHPOutOfRange},
		{"attribute below minimum", func(r *CharacterCreate) { r.Attributes.Strength = 0 }, errors.ErrAttributeRange},
		{"attribute above maximum", func(r *CharacterCreate) { r.Attributes.Charisma = 31 }, errors.ErrAttributeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCharacterCreate()
			tt.mutate(&req)

			service := NewCharacterService(new(MockCharacterRepository), new(MockCampaignRepository), new(MockMemberRepository), new(MockUserRepository))
			character, err := service.CreateCharacter(context.Background(), campaignID, req, requesterID)

			assert.Equal(t, tt.expectedError, err)
			assert.Nil(t, character)
		})
	}
}

func TestCharacterService_CreateCharacter(t *testing.T) {
	gmID := uuid.New()
	playerID := uuid.New()
	campaignID := uuid.New()
	campaign := func() *model.Campaign {
		return &model.Campaign{ID: campaignID, GMID: gmID}
	}

	t.Run("player creates their own character", func(t *testing.T) {
		characterRepo := new(MockCharacterRepository)
		campaignRepo := new(MockCampaignRepository)
		memberRepo := new(MockMemberRepository)
		userRepo := new(MockUserRepository)
		campaignRepo.On("FindByID", mock.Anything, campaignID).Return(campaign(), nil)
		userRepo.On("FindByID", mock.Anything, playerID).Return(&model.User{ID: playerID}, nil)
		memberRepo.On("Exists", mock.Anything, campaignID, playerID).Return(true, nil)
		characterRepo.On("ExistsByCampaignAndOwner", mock.Anything, campaignID, playerID).Return(false, nil)
		characterRepo.On("NameTaken", mock.Anything, campaignID, "Thorin").Return(false, nil)
		characterRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Character")).Return(nil)

		service := NewCharacterService(characterRepo, campaignRepo, memberRepo, userRepo)
		character, err := service.CreateCharacter(context.Background(), campaignID, validCharacterCreate(), playerID)

		assert.NoError(t, err)
		assert.Equal(t, playerID, character.OwnerID)
		assert.Equal(t, campaignID, character.CampaignID)
		characterRepo.AssertExpectations(t)
	})

	t.Run("GM creates for a member", func(t *testing.T) {
		characterRepo := new(MockCharacterRepository)
		campaignRepo := new(MockCampaignRepository)
		memberRepo := new(MockMemberRepository)
		userRepo := new(MockUserRepository)
		campaignRepo.On("FindByID", mock.Anything, campaignID).Return(campaign(), nil)
		userRepo.On("FindByID", mock.Anything, playerID).Return(&model.User{ID: playerID}, nil)
		memberRepo.On("Exists", mock.Anything, campaignID, playerID).Return(true, nil)
		characterRepo.On("ExistsByCampaignAndOwner", mock.Anything, campaignID, playerID).Return(false, nil)
		characterRepo.On("NameTaken", mock.Anything, campaignID, "Thorin").Return(false, nil)
		characterRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Character")).Return(nil)

		req := validCharacterCreate()
		req.OwnerID = &playerID

		service := NewCharacterService(characterRepo, campaignRepo, memberRepo, userRepo)
		character, err := service.CreateCharacter(context.Background(), campaignID, req, gmID)

		assert.NoError(t, err)
		assert.Equal(t, playerID, character.OwnerID)
	})

	t.Run("a stranger cannot create for someone else", func(t *testing.T) {
		campaignRepo := new(MockCampaignRepository)
		userRepo := new(MockUserRepository)
		campaignRepo.On("FindByID", mock.Anything, campaignID).Return(campaign(), nil)
		userRepo.On("FindByID", mock.Anything, playerID).Return(&model.User{ID: playerID}, nil)

		req := validCharacterCreate()
		req.OwnerID = &playerID

		service := NewCharacterService(new(MockCharacterRepository), campaignRepo, new(MockMemberRepository), userRepo)
		_, err := service.CreateCharacter(context.Background(), campaignID, req, uuid.New())
		assert.Equal(t, errors.ErrCharacterForbidden, err)
	})

	t.Run("owner must be a campaign member", func(t *testing.T) {
		campaignRepo := new(MockCampaignRepository)
		memberRepo := new(MockMemberRepository)
		userRepo := new(MockUserRepository)
		campaignRepo.On("FindByID", mock.Anything, campaignID).Return(campaign(), nil)
		userRepo.On("FindByID", mock.Anything, playerID).Return(&model.User{ID: playerID}, nil)
		memberRepo.On("Exists", mock.Anything, campaignID, playerID).Return(false, nil)

		service := NewCharacterService(new(MockCharacterRepository), campaignRepo, memberRepo, userRepo)
		_, err := service.CreateCharacter(context.Background(), campaignID, validCharacterCreate(), playerID)
		assert.Equal(t, errors.ErrOwnerNotMember, err)
	})

	t.Run("one character per player per campaign", func(t *testing.T) {
		characterRepo := new(MockCharacterRepository)
		campaignRepo := new(MockCampaignRepository)
		memberRepo := new(MockMemberRepository)
		userRepo := new(MockUserRepository)
		campaignRepo.On("FindByID", mock.Anything, campaignID).Return(campaign(), nil)
		userRepo.On("FindByID", mock.Anything, playerID).Return(&model.User{ID: playerID}, nil)
		memberRepo.On("Exists", mock.Anything, campaignID, playerID).Return(true, nil)
		characterRepo.On("ExistsByCampaignAndOwner", mock.Anything, campaignID, playerID).Return(true, nil)

		service := NewCharacterService(characterRepo, campaignRepo, memberRepo, userRepo)
		_, err := service.CreateCharacter(context.Background(), campaignID, validCharacterCreate(), playerID)
		assert.Equal(t, errors.ErrCharacterLimit, err)
	})

	t.Run("duplicate name in the campaign", func(t *testing.T) {
		characterRepo := new(MockCharacterRepository)
		campaignRepo := new(MockCampaignRepository)
		memberRepo := new(MockMemberRepository)
		userRepo := new(MockUserRepository)
		campaignRepo.On("FindByID", mock.Anything, campaignID).Return(campaign(), nil)
		userRepo.On("FindByID", mock.Anything, playerID).Return(&model.User{ID: playerID}, nil)
		memberRepo.On("Exists", mock.Anything, campaignID, playerID).Return(true, nil)
		characterRepo.On("ExistsByCampaignAndOwner", mock.Anything, campaignID, playerID).Return(false, nil)
		characterRepo.On("NameTaken", mock.Anything, campaignID, "Thorin").Return(true, nil)

		service := NewCharacterService(characterRepo, campaignRepo, memberRepo, userRepo)
		_, err := service.CreateCharacter(context.Background(), campaignID, validCharacterCreate(), playerID)
		assert.Equal(t, errors.ErrCharacterNameTaken, err)
	})
}

func TestCharacterService_UpdateCharacter(t *testing.T) {
	gmID := uuid.New()
	playerID := uuid.New()
	campaignID := uuid.New()
	characterID := uuid.New()

	setup := func() (*MockCharacterRepository, *MockCampaignRepository) {
		characterRepo := new(MockCharacterRepository)
		campaignRepo := new(MockCampaignRepository)
		characterRepo.On("FindByID", mock.Anything, characterID).Return(&model.Character{
			ID: characterID, Name: "Thorin", Class: "Fighter", Race: "Dwarf",
			Level: 3, HP: 24, MaxHP: 28, Attributes: validAttributes(),
			OwnerID: playerID, CampaignID: campaignID,
		}, nil)
		campaignRepo.On("FindByID", mock.Anything, campaignID).Return(&model.Campaign{ID: campaignID, GMID: gmID}, nil)
		return characterRepo, campaignRepo
	}

	t.Run("rename re-checks uniqueness", func(t *testing.T) {
		characterRepo, campaignRepo := setup()
		characterRepo.On("NameTaken", mock.Anything, campaignID, "Balin").Return(true, nil)

		service := NewCharacterService(characterRepo, campaignRepo, new(MockMemberRepository), new(MockUserRepository))
		newName := "Balin"
		_, err := service.UpdateCharacter(context.Background(), characterID, CharacterPatch{Name: &newName}, playerID)
		assert.Equal(t, errors.ErrCharacterNameTaken, err)
	})

	t.Run("case-only rename skips the uniqueness check", func(t *testing.T) {
		characterRepo, campaignRepo := setup()
		characterRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Character")).Return(nil)

		service := NewCharacterService(characterRepo, campaignRepo, new(MockMemberRepository), new(MockUserRepository))
		newName := "THORIN"
		character, err := service.UpdateCharacter(context.Background(), characterID, CharacterPatch{Name: &newName}, playerID)

		assert.NoError(t, err)
		assert.Equal(t, "THORIN", character.Name)
		characterRepo.AssertNotCalled(t, "NameTaken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("max hp cannot drop below current hp", func(t *testing.T) {
		characterRepo, campaignRepo := setup()

		service := NewCharacterService(characterRepo, campaignRepo, new(MockMemberRepository), new(MockUserRepository))
		newMax := 20
		_, err := service.UpdateCharacter(context.Background(), characterID, CharacterPatch{MaxHP: &newMax}, playerID)
		assert.Equal(t, errors.ErrMaxHPBelowHP, err)
	})

	t.Run("attributes replace the whole stat block", func(t *testing.T) {
		characterRepo, campaignRepo := setup()
		characterRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Character")).Return(nil)

		service := NewCharacterService(characterRepo, campaignRepo, new(MockMemberRepository), new(MockUserRepository))
		attrs := model.Attributes{Strength: 18, Dexterity: 8, Constitution: 16, Intelligence: 9, Wisdom: 10, Charisma: 7}
		character, err := service.UpdateCharacter(context.Background(), characterID, CharacterPatch{Attributes: &attrs}, gmID)

		assert.NoError(t, err)
		assert.Equal(t, attrs, character.Attributes)
	})

	t.Run("neither owner nor GM", func(t *testing.T) {
		characterRepo, campaignRepo := setup()

		service := NewCharacterService(characterRepo, campaignRepo, new(MockMemberRepository), new(MockUserRepository))
		newLevel := 4
		_, err := service.UpdateCharacter(context.Background(), characterID, CharacterPatch{Level: &newLevel}, uuid.New())
		assert.Equal(t, errors.ErrNotOwnerOrGM, err)
	})
}

func TestCharacterService_PatchHP(t *testing.T) {
	playerID := uuid.New()
	campaignID := uuid.New()
	characterID := uuid.New()

	setup := func() (*MockCharacterRepository, *MockCampaignRepository) {
		characterRepo := new(MockCharacterRepository)
		campaignRepo := new(MockCampaignRepository)
		characterRepo.On("FindByID", mock.Anything, characterID).Return(&model.Character{
			ID: characterID, Name: "Thorin", HP: 20, MaxHP: 28,
			OwnerID: playerID, CampaignID: campaignID,
		}, nil)
		campaignRepo.On("FindByID", mock.Anything, campaignID).Return(&model.Campaign{ID: campaignID, GMID: uuid.New()}, nil)
		return characterRepo, campaignRepo
	}

	intp := func(v int) *int { return &v }

	tests := []struct {
		name          string
		patch         HPPatch
		expectedHP    int
		expectedError error
	}{
		{"set wins over delta and param", HPPatch{Set: intp(5), Delta: intp(-100), Param: intp(1)}, 5, nil},
		{"delta wins over param", HPPatch{Delta: intp(-4), Param: intp(1)}, 16, nil},
		{"bare param applies", HPPatch{Param: intp(12)}, 12, nil},
		{"no source at all", HPPatch{}, 0, errors.ErrHPMissing},
		{"delta below zero", HPPatch{Delta: intp(-21)}, 0, errors.ErrHPOutOfRange},
		{"set above max", HPPatch{Set: intp(29)}, 0, errors.ErrHPOutOfRange},
		{"healing to exactly max", HPPatch{Delta: intp(8)}, 28, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			characterRepo, campaignRepo := setup()
			if tt.expectedError == nil {
				characterRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Character")).Return(nil)
			}

			service := NewCharacterService(characterRepo, campaignRepo, new(MockMemberRepository), new(MockUserRepository))
			character, err := service.PatchHP(context.Background(), characterID, tt.patch, playerID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedHP, character.HP)
			}
		})
	}
}

func TestCharacterService_GetByID(t *testing.T) {
	characterID := uuid.New()

	characterRepo := new(MockCharacterRepository)
	characterRepo.On("FindByID", mock.Anything, characterID).Return(nil, gorm.ErrRecordNotFound)

	service := NewCharacterService(characterRepo, new(MockCampaignRepository), new(MockMemberRepository), new(MockUserRepository))
	_, err := service.GetByID(context.Background(), characterID)
	assert.Equal(t, errors.ErrCharacterNotFound, err)
}
