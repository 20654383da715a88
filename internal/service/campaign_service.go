package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabletoprpg/internal/cache"
	"tabletoprpg/internal/errors"
	"tabletoprpg/internal/model"
	"tabletoprpg/internal/repository"
)

const campaignCacheTTL = 5 * time.Minute

// CampaignPatch carries the optional fields of a campaign update; nil
// fields are left unchanged.
type CampaignPatch struct {
	Name        *string
	Description *string
}

// CampaignService owns campaign lifecycle and the campaign membership
// relation. Every mutation takes the authenticated requester id and checks
// the GM-only rule against the campaign's owning GM.
type CampaignService interface {
	CreateCampaign(ctx context.Context, gmID uuid.UUID, name, description string) (*model.Campaign, error)
	UpdateCampaign(ctx context.Context, campaignID, requesterID uuid.UUID, patch CampaignPatch) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID, requesterID uuid.UUID) error
	GetCampaign(ctx context.Context, campaignID uuid.UUID) (*model.Campaign, error)
	ListByGM(ctx context.Context, gmID uuid.UUID) ([]model.Campaign, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Campaign, error)

	UpsertMember(ctx context.Context, campaignID, userID uuid.UUID, role model.CampaignRole, requesterID uuid.UUID) (*model.CampaignMember, bool, error)
	UpdateMemberRole(ctx context.Context, campaignID, userID uuid.UUID, role model.CampaignRole, requesterID uuid.UUID) (*model.CampaignMember, error)
	RemoveMember(ctx context.Context, campaignID, userID, requesterID uuid.UUID) error
	ListMembers(ctx context.Context, campaignID, requesterID uuid.UUID) ([]model.CampaignMember, error)
}

type campaignService struct {
	campaignRepo  repository.CampaignRepository
	memberRepo    repository.MemberRepository
	characterRepo repository.CharacterRepository
	userRepo      repository.UserRepository
	cache         *cache.Client
}

// NewCampaignService creates a new campaign service.
func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	memberRepo repository.MemberRepository,
	characterRepo repository.CharacterRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) CampaignService {
	return &campaignService{
		campaignRepo:  campaignRepo,
		memberRepo:    memberRepo,
		characterRepo: characterRepo,
		userRepo:      userRepo,
		cache:         cache,
	}
}

// CreateCampaign persists a campaign owned by the calling GM and inserts
// the GM membership idempotently, so a retried create does not fail on the
// membership insert.
func (s *campaignService) CreateCampaign(ctx context.Context, gmID uuid.UUID, name, description string) (*model.Campaign, error) {
	gm, err := s.userRepo.FindByID(ctx, gmID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrBlankCampaignName
	}

	campaign := &model.Campaign{
		Name:        name,
		Description: strings.TrimSpace(description),
		GMID:        gm.ID,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrCampaignNameTaken
		}
		return nil, err
	}

	member := &model.CampaignMember{
		CampaignID: campaign.ID,
		UserID:     gm.ID,
		Role:       model.CampaignRoleGM,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil && !stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	return campaign, nil
}

// UpdateCampaign applies a partial update after the GM-only gate.
func (s *campaignService) UpdateCampaign(ctx context.Context, campaignID, requesterID uuid.UUID, patch CampaignPatch) (*model.Campaign, error) {
	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.GMID != requesterID {
		return nil, errors.ErrNotCampaignGM
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errors.ErrBlankCampaignName
		}
		campaign.Name = name
	}
	if patch.Description != nil {
		campaign.Description = strings.TrimSpace(*patch.Description)
	}

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrCampaignNameTaken
		}
		return nil, err
	}
	_ = s.cache.Delete(ctx, cache.CampaignKey(campaignID))
	return campaign, nil
}

// DeleteCampaign removes a campaign unless characters still exist in it;
// deleting those sheets silently would lose player data.
func (s *campaignService) DeleteCampaign(ctx context.Context, campaignID, requesterID uuid.UUID) error {
	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign.GMID != requesterID {
		return errors.ErrNotCampaignGM
	}

	hasCharacters, err := s.characterRepo.ExistsByCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if hasCharacters {
		return errors.ErrCampaignHasCharacter
	}

	if err := s.campaignRepo.Delete(ctx, campaign); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.CampaignKey(campaignID))
	return nil
}

// GetCampaign returns a campaign by id, read through the cache.
func (s *campaignService) GetCampaign(ctx context.Context, campaignID uuid.UUID) (*model.Campaign, error) {
	if data, _ := s.cache.Get(ctx, cache.CampaignKey(campaignID)); data != nil {
		var cached model.Campaign
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(campaign); err == nil {
		_ = s.cache.Set(ctx, cache.CampaignKey(campaignID), payload, campaignCacheTTL)
	}
	return campaign, nil
}

// ListByGM lists campaigns the user runs, newest first.
func (s *campaignService) ListByGM(ctx context.Context, gmID uuid.UUID) ([]model.Campaign, error) {
	return s.campaignRepo.ListByGM(ctx, gmID)
}

// ListByMember lists campaigns the user participates in, newest first.
func (s *campaignService) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Campaign, error) {
	return s.campaignRepo.ListByMember(ctx, userID)
}

// UpsertMember adds a user to the campaign or updates their role, with PUT
// semantics: repeating the call with the same role is a no-op reporting
// created=false. An empty role defaults to PLAYER. Assigning GM to anyone
// but the owning GM is rejected.
func (s *campaignService) UpsertMember(ctx context.Context, campaignID, userID uuid.UUID, role model.CampaignRole, requesterID uuid.UUID) (*model.CampaignMember, bool, error) {
	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return nil, false, err
	}
	if campaign.GMID != requesterID {
		return nil, false, errors.ErrNotCampaignGM
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errors.ErrUserNotFound
		}
		return nil, false, err
	}

	if role == "" {
		role = model.CampaignRolePlayer
	}
	if !role.Valid() {
		return nil, false, errors.ErrInvalidRole
	}
	if role == model.CampaignRoleGM && userID != campaign.GMID {
		return nil, false, errors.ErrSecondGM
	}

	existing, err := s.memberRepo.Find(ctx, campaignID, userID)
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if existing == nil {
		member := &model.CampaignMember{
			CampaignID: campaignID,
			UserID:     userID,
			Role:       role,
		}
		err := s.memberRepo.Create(ctx, member)
		if err == nil {
			return member, true, nil
		}
		if !stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, err
		}
		// Lost an insert race against an identical PUT: fall through to
		// the update path so the caller still sees the idempotent outcome.
		existing, err = s.memberRepo.Find(ctx, campaignID, userID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, errors.ErrMemberNotFound
			}
			return nil, false, err
		}
	}

	if existing.Role != role {
		existing.Role = role
		if err := s.memberRepo.Save(ctx, existing); err != nil {
			return nil, false, err
		}
	}
	return existing, false, nil
}

// UpdateMemberRole changes an existing member's role, PATCH semantics:
// unlike UpsertMember it fails NotFound when no membership row exists.
func (s *campaignService) UpdateMemberRole(ctx context.Context, campaignID, userID uuid.UUID, role model.CampaignRole, requesterID uuid.UUID) (*model.CampaignMember, error) {
	if !role.Valid() {
		return nil, errors.ErrInvalidRole
	}

	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.GMID != requesterID {
		return nil, errors.ErrNotCampaignGM
	}
	if role == model.CampaignRoleGM && userID != campaign.GMID {
		return nil, errors.ErrSecondGM
	}

	member, err := s.memberRepo.Find(ctx, campaignID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMemberNotFound
		}
		return nil, err
	}

	member.Role = role
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember removes a member and cascades deletion of that member's
// characters within the campaign. The owning GM cannot be removed.
func (s *campaignService) RemoveMember(ctx context.Context, campaignID, userID, requesterID uuid.UUID) error {
	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign.GMID != requesterID {
		return errors.ErrNotCampaignGM
	}
	if userID == campaign.GMID {
		return errors.ErrRemoveOwningGM
	}

	member, err := s.memberRepo.Find(ctx, campaignID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrMemberNotFound
		}
		return err
	}

	// The character cascade and the membership delete must land together.
	return s.memberRepo.WithTransaction(ctx, func(ctx context.Context, members repository.MemberRepository, characters repository.CharacterRepository) error {
		if err := characters.DeleteByCampaignAndOwner(ctx, campaignID, userID); err != nil {
			return err
		}
		return members.Delete(ctx, member)
	})
}

// ListMembers lists the campaign roster. GM-only read.
func (s *campaignService) ListMembers(ctx context.Context, campaignID, requesterID uuid.UUID) ([]model.CampaignMember, error) {
	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.GMID != requesterID {
		return nil, errors.ErrNotCampaignGM
	}
	return s.memberRepo.ListByCampaign(ctx, campaignID)
}

func (s *campaignService) loadCampaign(ctx context.Context, campaignID uuid.UUID) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}
