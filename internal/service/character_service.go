package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabletoprpg/internal/errors"
	"tabletoprpg/internal/model"
	"tabletoprpg/internal/repository"
)

// CharacterCreate carries the fields of a character creation. OwnerID may
// name another campaign member when the GM creates the sheet; nil means
// the requester owns it.
type CharacterCreate struct {
	Name       string
	Class      string
	Race       string
	Level      int
	HP         int
	MaxHP      int
	Attributes model.Attributes
	OwnerID    *uuid.UUID
}

// CharacterPatch carries the optional fields of a character update; nil
// fields are left unchanged. Attributes replace the full stat block
// atomically, never a single stat.
type CharacterPatch struct {
	Name       *string
	Class      *string
	Race       *string
	Level      *int
	MaxHP      *int
	Attributes *model.Attributes
}

// HPPatch resolves the new HP from up to three sources. Set wins over
// Delta, which wins over the bare query parameter.
type HPPatch struct {
	Set   *int
	Delta *int
	Param *int
}

// CharacterService owns character lifecycle inside campaigns: one
// character per player per campaign, per-campaign name uniqueness, and the
// HP/attribute invariants.
type CharacterService interface {
	CreateCharacter(ctx context.Context, campaignID uuid.UUID, req CharacterCreate, requesterID uuid.UUID) (*model.Character, error)
	UpdateCharacter(ctx context.Context, characterID uuid.UUID, patch CharacterPatch, requesterID uuid.UUID) (*model.Character, error)
	PatchHP(ctx context.Context, characterID uuid.UUID, patch HPPatch, requesterID uuid.UUID) (*model.Character, error)
	DeleteCharacter(ctx context.Context, characterID, requesterID uuid.UUID) error
	GetByID(ctx context.Context, characterID uuid.UUID) (*model.Character, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Character, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Character, error)
}

type characterService struct {
	characterRepo repository.CharacterRepository
	campaignRepo  repository.CampaignRepository
	memberRepo    repository.MemberRepository
	userRepo      repository.UserRepository
}

// NewCharacterService creates a new character service.
func NewCharacterService(
	characterRepo repository.CharacterRepository,
	campaignRepo repository.CampaignRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
) CharacterService {
	return &characterService{
		characterRepo: characterRepo,
		campaignRepo:  campaignRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
	}
}

// CreateCharacter validates the sheet, checks that the requester is the
// campaign GM or the intended owner, that the owner is a campaign member,
// and enforces the one-character-per-player and name-uniqueness rules.
func (s *characterService) CreateCharacter(ctx context.Context, campaignID uuid.UUID, req CharacterCreate, requesterID uuid.UUID) (*model.Character, error) {
	name := strings.TrimSpace(req.Name)
	class := strings.TrimSpace(req.Class)
	race := strings.TrimSpace(req.Race)

	switch {
	case name == "":
		return nil, errors.ErrBlankCharacterName
	case class == "":
		return nil, errors.ErrBlankClass
	case race == "":
		return nil, errors.ErrBlankRace
	case req.Level < 1:
		return nil, errors.ErrLevelTooLow
	case req.MaxHP < 1:
		return nil, errors.ErrMaxHPTooLow
	case req.HP < 0 || req.HP > req.MaxHP:
		return nil, errors.ErrHPOutOfRange
	case !req.Attributes.InRange():
		return nil, errors.ErrAttributeRange
	}

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCampaignNotFound
		}
		return nil, err
	}

	ownerID := requesterID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if requesterID != campaign.GMID && requesterID != owner.ID {
		return nil, errors.ErrCharacterForbidden
	}

	isMember, err := s.memberRepo.Exists(ctx, campaignID, owner.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, errors.ErrOwnerNotMember
	}

	hasCharacter, err := s.characterRepo.ExistsByCampaignAndOwner(ctx, campaignID, owner.ID)
	if err != nil {
		return nil, err
	}
	if hasCharacter {
		return nil, errors.ErrCharacterLimit
	}

	taken, err := s.characterRepo.NameTaken(ctx, campaignID, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.ErrCharacterNameTaken
	}

	character := &model.Character{
		Name:       name,
		Class:      class,
		Race:       race,
		Level:      req.Level,
		HP:         req.HP,
		MaxHP:      req.MaxHP,
		Attributes: req.Attributes,
		OwnerID:    owner.ID,
		CampaignID: campaign.ID,
	}
	if err := s.characterRepo.Create(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

// UpdateCharacter applies a partial update. Renames re-check uniqueness
// excluding the character's own current name, and MaxHP cannot drop below
// the current HP.
func (s *characterService) UpdateCharacter(ctx context.Context, characterID uuid.UUID, patch CharacterPatch, requesterID uuid.UUID) (*model.Character, error) {
	character, _, err := s.loadAuthorized(ctx, characterID, requesterID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errors.ErrBlankCharacterName
		}
		if !strings.EqualFold(name, character.Name) {
			taken, err := s.characterRepo.NameTaken(ctx, character.CampaignID, name)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, errors.ErrCharacterNameTaken
			}
		}
		character.Name = name
	}
	if patch.Class != nil {
		class := strings.TrimSpace(*patch.Class)
		if class == "" {
			return nil, errors.ErrBlankClass
		}
		character.Class = class
	}
	if patch.Race != nil {
		race := strings.TrimSpace(*patch.Race)
		if race == "" {
			return nil, errors.ErrBlankRace
		}
		character.Race = race
	}
	if patch.Level != nil {
		if *patch.Level < 1 {
			return nil, errors.ErrLevelTooLow
		}
		character.Level = *patch.Level
	}
	if patch.MaxHP != nil {
		if *patch.MaxHP < 1 {
			return nil, errors.ErrMaxHPTooLow
		}
		if character.HP > *patch.MaxHP {
			return nil, errors.ErrMaxHPBelowHP
		}
		character.MaxHP = *patch.MaxHP
	}
	if patch.Attributes != nil {
		if !patch.Attributes.InRange() {
			return nil, errors.ErrAttributeRange
		}
		character.Attributes = *patch.Attributes
	}

	if err := s.characterRepo.Save(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

// PatchHP sets the character's HP from the highest-priority source given
// and enforces 0 <= hp <= maxHp.
func (s *characterService) PatchHP(ctx context.Context, characterID uuid.UUID, patch HPPatch, requesterID uuid.UUID) (*model.Character, error) {
	character, _, err := s.loadAuthorized(ctx, characterID, requesterID)
	if err != nil {
		return nil, err
	}

	var newHP *int
	switch {
	case patch.Set != nil:
		newHP = patch.Set
	case patch.Delta != nil:
		v := character.HP + *patch.Delta
		newHP = &v
	case patch.Param != nil:
		newHP = patch.Param
	}
	if newHP == nil {
		return nil, errors.ErrHPMissing
	}
	if *newHP < 0 || *newHP > character.MaxHP {
		return nil, errors.ErrHPOutOfRange
	}

	character.HP = *newHP
	if err := s.characterRepo.Save(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

// DeleteCharacter removes a character. Owner or GM only.
func (s *characterService) DeleteCharacter(ctx context.Context, characterID, requesterID uuid.UUID) error {
	character, _, err := s.loadAuthorized(ctx, characterID, requesterID)
	if err != nil {
		return err
	}
	return s.characterRepo.Delete(ctx, character)
}

// GetByID returns a character sheet. Reads are open lookups.
func (s *characterService) GetByID(ctx context.Context, characterID uuid.UUID) (*model.Character, error) {
	character, err := s.characterRepo.FindByID(ctx, characterID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCharacterNotFound
		}
		return nil, err
	}
	return character, nil
}

// ListByCampaign lists the characters in a campaign.
func (s *characterService) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Character, error) {
	return s.characterRepo.ListByCampaign(ctx, campaignID)
}

// ListByOwner lists a user's characters across campaigns.
func (s *characterService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Character, error) {
	return s.characterRepo.ListByOwner(ctx, ownerID)
}

// loadAuthorized loads a character and its campaign and enforces the
// owner-or-GM rule shared by all character mutations.
func (s *characterService) loadAuthorized(ctx context.Context, characterID, requesterID uuid.UUID) (*model.Character, *model.Campaign, error) {
	character, err := s.characterRepo.FindByID(ctx, characterID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.ErrCharacterNotFound
		}
		return nil, nil, err
	}

	campaign, err := s.campaignRepo.FindByID(ctx, character.CampaignID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.ErrCampaignNotFound
		}
		return nil, nil, err
	}

	if requesterID != character.OwnerID && requesterID != campaign.GMID {
		return nil, nil, errors.ErrNotOwnerOrGM
	}
	return character, campaign, nil
}
