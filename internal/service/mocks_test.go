package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tabletoprpg/internal/model"
	"tabletoprpg/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockCampaignRepository is a mock implementation of CampaignRepository.
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) Save(ctx context.Context, campaign *model.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, campaign *model.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListByGM(ctx context.Context, gmID uuid.UUID) ([]model.Campaign, error) {
	args := m.Called(ctx, gmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Campaign, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ExistsByGM(ctx context.Context, gmID uuid.UUID) (bool, error) {
	args := m.Called(ctx, gmID)
	return args.Bool(0), args.Error(1)
}

// MockMemberRepository is a mock implementation of MemberRepository. Tests
// exercising WithTransaction set characters to the character mock so the
// callback runs against both.
type MockMemberRepository struct {
	mock.Mock
	characters repository.CharacterRepository
}

func (m *MockMemberRepository) Create(ctx context.Context, member *model.CampaignMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Save(ctx context.Context, member *model.CampaignMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, member *model.CampaignMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Find(ctx context.Context, campaignID, userID uuid.UUID) (*model.CampaignMember, error) {
	args := m.Called(ctx, campaignID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CampaignMember), args.Error(1)
}

func (m *MockMemberRepository) Exists(ctx context.Context, campaignID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, campaignID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.CampaignMember, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CampaignMember), args.Error(1)
}

func (m *MockMemberRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, members repository.MemberRepository, characters repository.CharacterRepository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m, m.characters)
}

// MockCharacterRepository is a mock implementation of CharacterRepository.
type MockCharacterRepository struct {
	mock.Mock
}

func (m *MockCharacterRepository) Create(ctx context.Context, character *model.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) Save(ctx context.Context, character *model.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) Delete(ctx context.Context, character *model.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Character), args.Error(1)
}

func (m *MockCharacterRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Character, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Character), args.Error(1)
}

func (m *MockCharacterRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Character, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Character), args.Error(1)
}

func (m *MockCharacterRepository) ExistsByCampaign(ctx context.Context, campaignID uuid.UUID) (bool, error) {
	args := m.Called(ctx, campaignID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCharacterRepository) ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCharacterRepository) ExistsByCampaignAndOwner(ctx context.Context, campaignID, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, campaignID, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCharacterRepository) NameTaken(ctx context.Context, campaignID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, campaignID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCharacterRepository) DeleteByCampaignAndOwner(ctx context.Context, campaignID, ownerID uuid.UUID) error {
	args := m.Called(ctx, campaignID, ownerID)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Save(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) NameTaken(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Search(ctx context.Context, name string) ([]model.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository.
// WithTransaction runs the callback against the mock itself so the
// transactional flow is exercised in tests.
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Create(ctx context.Context, entry *model.InventoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockInventoryRepository) Save(ctx context.Context, entry *model.InventoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, characterID, itemID uuid.UUID) error {
	args := m.Called(ctx, characterID, itemID)
	return args.Error(0)
}

func (m *MockInventoryRepository) Find(ctx context.Context, characterID, itemID uuid.UUID) (*model.InventoryEntry, error) {
	args := m.Called(ctx, characterID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) FindForUpdate(ctx context.Context, characterID, itemID uuid.UUID) (*model.InventoryEntry, error) {
	args := m.Called(ctx, characterID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]model.InventoryEntry, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) ExistsByItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.InventoryRepository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Create(ctx context.Context, entry *model.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) Save(ctx context.Context, entry *model.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) Delete(ctx context.Context, entry *model.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID, filter repository.JournalFilter) ([]model.JournalEntry, error) {
	args := m.Called(ctx, campaignID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListPersonal(ctx context.Context, authorID uuid.UUID) ([]model.JournalEntry, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ExistsByAuthor(ctx context.Context, authorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, authorID)
	return args.Bool(0), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
