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

const userCacheTTL = 5 * time.Minute

// UserService exposes user lookups and the guarded account deletion.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo      repository.UserRepository
	campaignRepo  repository.CampaignRepository
	characterRepo repository.CharacterRepository
	journalRepo   repository.JournalRepository
	cache         *cache.Client
}

// NewUserService builds a UserService with its repositories and cache.
func NewUserService(
	userRepo repository.UserRepository,
	campaignRepo repository.CampaignRepository,
	characterRepo repository.CharacterRepository,
	journalRepo repository.JournalRepository,
	cache *cache.Client,
) UserService {
	return &userService{
		userRepo:      userRepo,
		campaignRepo:  campaignRepo,
		characterRepo: characterRepo,
		journalRepo:   journalRepo,
		cache:         cache,
	}
}

// GetUser returns a user by id, read through the cache.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, cache.UserKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, cache.UserKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// GetByUsername returns a user by exact username.
func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers lists all users.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes an account unless it is still referenced as a
// campaign GM, character owner, or journal author.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return err
	}

	isGM, err := s.campaignRepo.ExistsByGM(ctx, id)
	if err != nil {
		return err
	}
	if isGM {
		return errors.ErrUserOwnsCampaign
	}

	ownsCharacter, err := s.characterRepo.ExistsByOwner(ctx, id)
	if err != nil {
		return err
	}
	if ownsCharacter {
		return errors.ErrUserOwnsCharacter
	}

	hasJournals, err := s.journalRepo.ExistsByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if hasJournals {
		return errors.ErrUserAuthoredJournal
	}

	if err := s.userRepo.Delete(ctx, user); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.UserKey(id))
	return nil
}
