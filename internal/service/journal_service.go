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

// JournalCreate carries the fields of a new journal entry.
type JournalCreate struct {
	Type       string
	Visibility model.JournalVisibility
	Title      string
	Content    string
	Tags       string
}

// JournalPatch carries the optional fields of a journal update; nil fields
// are left unchanged.
type JournalPatch struct {
	Type       *string
	Visibility *model.JournalVisibility
	Title      *string
	Content    *string
	Tags       *string
}

// JournalService owns journal entries and resolves what a caller may read:
// campaign participants see PLAYERS entries, the GM sees everything, and
// personal (campaign-less) entries belong to their author alone.
type JournalService interface {
	CreateJournal(ctx context.Context, campaignID, requesterID uuid.UUID, req JournalCreate) (*model.JournalEntry, error)
	CreatePersonal(ctx context.Context, authorID uuid.UUID, req JournalCreate) (*model.JournalEntry, error)
	ListJournals(ctx context.Context, campaignID, requesterID uuid.UUID, typeFilter string, onlyPlayersVisible bool) ([]model.JournalEntry, error)
	ListPersonal(ctx context.Context, authorID uuid.UUID) ([]model.JournalEntry, error)
	GetJournalByID(ctx context.Context, entryID, requesterID uuid.UUID) (*model.JournalEntry, error)
	UpdateJournal(ctx context.Context, entryID, requesterID uuid.UUID, patch JournalPatch) (*model.JournalEntry, error)
	DeleteJournal(ctx context.Context, entryID, requesterID uuid.UUID) error
}

type journalService struct {
	journalRepo  repository.JournalRepository
	campaignRepo repository.CampaignRepository
	memberRepo   repository.MemberRepository
	userRepo     repository.UserRepository
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo repository.JournalRepository,
	campaignRepo repository.CampaignRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
) JournalService {
	return &journalService{
		journalRepo:  journalRepo,
		campaignRepo: campaignRepo,
		memberRepo:   memberRepo,
		userRepo:     userRepo,
	}
}

func validateJournalCreate(req *JournalCreate) error {
	req.Type = strings.TrimSpace(req.Type)
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.Tags = strings.TrimSpace(req.Tags)

	switch {
	case req.Type == "":
		return errors.ErrBlankJournalType
	case req.Visibility == "":
		return errors.ErrMissingVisibility
	case !req.Visibility.Valid():
		return errors.ErrInvalidVisibility
	case req.Title == "":
		return errors.ErrBlankTitle
	case req.Content == "":
		return errors.ErrBlankContent
	}
	return nil
}

// CreateJournal creates a campaign-scoped entry. GM only.
func (s *journalService) CreateJournal(ctx context.Context, campaignID, requesterID uuid.UUID, req JournalCreate) (*model.JournalEntry, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCampaignNotFound
		}
		return nil, err
	}
	if campaign.GMID != requesterID {
		return nil, errors.ErrGMOnlyJournal
	}

	author, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if err := validateJournalCreate(&req); err != nil {
		return nil, err
	}

	entry := &model.JournalEntry{
		CampaignID: &campaign.ID,
		AuthorID:   author.ID,
		Type:       req.Type,
		Visibility: req.Visibility,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
	}
	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// CreatePersonal creates a campaign-less entry owned by the author. Any
// authenticated user may keep personal notes.
func (s *journalService) CreatePersonal(ctx context.Context, authorID uuid.UUID, req JournalCreate) (*model.JournalEntry, error) {
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if err := validateJournalCreate(&req); err != nil {
		return nil, err
	}

	entry := &model.JournalEntry{
		AuthorID:   author.ID,
		Type:       req.Type,
		Visibility: req.Visibility,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
	}
	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListJournals lists a campaign's entries newest first. Participants only.
// Non-GM callers, and GMs that asked for player-visible filtering, see only
// PLAYERS entries.
func (s *journalService) ListJournals(ctx context.Context, campaignID, requesterID uuid.UUID, typeFilter string, onlyPlayersVisible bool) ([]model.JournalEntry, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCampaignNotFound
		}
		return nil, err
	}

	isGM := campaign.GMID == requesterID
	if !isGM {
		isMember, err := s.memberRepo.Exists(ctx, campaignID, requesterID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, errors.ErrNotParticipant
		}
	}

	filter := repository.JournalFilter{Type: strings.TrimSpace(typeFilter)}
	if !isGM || onlyPlayersVisible {
		visibility := model.VisibilityPlayers
		filter.Visibility = &visibility
	}
	return s.journalRepo.ListByCampaign(ctx, campaignID, filter)
}

// ListPersonal lists the caller's campaign-less entries.
func (s *journalService) ListPersonal(ctx context.Context, authorID uuid.UUID) ([]model.JournalEntry, error) {
	return s.journalRepo.ListPersonal(ctx, authorID)
}

// GetJournalByID returns one entry. Campaign entries require participancy,
// and GM_ONLY entries are withheld from non-GM readers. Personal entries
// are readable by their author alone.
func (s *journalService) GetJournalByID(ctx context.Context, entryID, requesterID uuid.UUID) (*model.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.CampaignID == nil {
		if entry.AuthorID != requesterID {
			return nil, errors.ErrNotJournalAuthor
		}
		return entry, nil
	}

	campaign, err := s.campaignRepo.FindByID(ctx, *entry.CampaignID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCampaignNotFound
		}
		return nil, err
	}

	isGM := campaign.GMID == requesterID
	if !isGM {
		isMember, err := s.memberRepo.Exists(ctx, *entry.CampaignID, requesterID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, errors.ErrNotParticipant
		}
		if entry.Visibility != model.VisibilityPlayers {
			return nil, errors.ErrJournalGMOnly
		}
	}
	return entry, nil
}

// UpdateJournal applies a partial update. GM of the entry's campaign only;
// for personal entries, the author.
func (s *journalService) UpdateJournal(ctx context.Context, entryID, requesterID uuid.UUID, patch JournalPatch) (*model.JournalEntry, error) {
	entry, err := s.loadEntryForWrite(ctx, entryID, requesterID)
	if err != nil {
		return nil, err
	}

	if patch.Type != nil {
		t := strings.TrimSpace(*patch.Type)
		if t == "" {
			return nil, errors.ErrBlankJournalType
		}
		entry.Type = t
	}
	if patch.Visibility != nil {
		if !patch.Visibility.Valid() {
			return nil, errors.ErrInvalidVisibility
		}
		entry.Visibility = *patch.Visibility
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, errors.ErrBlankTitle
		}
		entry.Title = t
	}
	if patch.Content != nil {
		c := strings.TrimSpace(*patch.Content)
		if c == "" {
			return nil, errors.ErrBlankContent
		}
		entry.Content = c
	}
	if patch.Tags != nil {
		entry.Tags = strings.TrimSpace(*patch.Tags)
	}

	if err := s.journalRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteJournal removes an entry under the same write rule as UpdateJournal.
func (s *journalService) DeleteJournal(ctx context.Context, entryID, requesterID uuid.UUID) error {
	entry, err := s.loadEntryForWrite(ctx, entryID, requesterID)
	if err != nil {
		return err
	}
	return s.journalRepo.Delete(ctx, entry)
}

func (s *journalService) loadEntry(ctx context.Context, entryID uuid.UUID) (*model.JournalEntry, error) {
	entry, err := s.journalRepo.FindByID(ctx, entryID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrJournalNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) loadEntryForWrite(ctx context.Context, entryID, requesterID uuid.UUID) (*model.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.CampaignID == nil {
		if entry.AuthorID != requesterID {
			return nil, errors.ErrNotJournalAuthor
		}
		return entry, nil
	}

	campaign, err := s.campaignRepo.FindByID(ctx, *entry.CampaignID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCampaignNotFound
		}
		return nil, err
	}
	if campaign.GMID != requesterID {
		return nil, errors.ErrGMOnlyJournal
	}
	return entry, nil
}
