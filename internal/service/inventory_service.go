package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabletoprpg/internal/cache"
	"tabletoprpg/internal/errors"
	"tabletoprpg/internal/model"
	"tabletoprpg/internal/repository"
)

const inventoryCacheTTL = time.Minute

// InventoryService owns the character-item quantity ledger. Granting items
// is a world-authoring action and requires the campaign GM; consuming them
// is a player action and requires the character's owner. Absolute-value
// writes (SetQuantity) are a stronger privilege and stay GM-only. Every
// quantity mutation runs inside a transaction with the ledger row locked,
// so concurrent calls on the same (character, item) pair serialize.
type InventoryService interface {
	GetInventory(ctx context.Context, characterID, requesterID uuid.UUID) ([]model.InventoryEntry, error)
	GiveItem(ctx context.Context, characterID, itemID uuid.UUID, quantity int, requesterID uuid.UUID) error
	ConsumeItem(ctx context.Context, characterID, itemID uuid.UUID, quantity int, requesterID uuid.UUID) error
	SetQuantity(ctx context.Context, characterID, itemID uuid.UUID, quantity int, requesterID uuid.UUID) error
	RemoveItem(ctx context.Context, characterID, itemID, requesterID uuid.UUID) error
	ChangeQuantity(ctx context.Context, characterID, itemID uuid.UUID, delta int, requesterID uuid.UUID) error
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	characterRepo repository.CharacterRepository
	campaignRepo  repository.CampaignRepository
	itemRepo      repository.ItemRepository
	cache         *cache.Client
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	characterRepo repository.CharacterRepository,
	campaignRepo repository.CampaignRepository,
	itemRepo repository.ItemRepository,
	cache *cache.Client,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		characterRepo: characterRepo,
		campaignRepo:  campaignRepo,
		itemRepo:      itemRepo,
		cache:         cache,
	}
}

// GetInventory lists a character's ledger. Owner or GM only.
func (s *inventoryService) GetInventory(ctx context.Context, characterID, requesterID uuid.UUID) ([]model.InventoryEntry, error) {
	character, campaign, err := s.loadCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if requesterID != character.OwnerID && requesterID != campaign.GMID {
		return nil, errors.ErrNotOwnerOrGM
	}

	if data, _ := s.cache.Get(ctx, cache.InventoryKey(characterID)); data != nil {
		var cached []model.InventoryEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.inventoryRepo.ListByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(entries); err == nil {
		_ = s.cache.Set(ctx, cache.InventoryKey(characterID), payload, inventoryCacheTTL)
	}
	return entries, nil
}

// GiveItem creates the ledger row with the given quantity or adds to an
// existing one. GM only.
func (s *inventoryService) GiveItem(ctx context.Context, characterID, itemID uuid.UUID, quantity int, requesterID uuid.UUID) error {
	if quantity < 1 {
		return errors.ErrQuantityTooLow
	}

	character, campaign, err := s.loadCharacter(ctx, characterID)
	if err != nil {
		return err
	}
	if requesterID != campaign.GMID {
		return errors.ErrGMOnlyGive
	}
	if err := s.checkItem(ctx, itemID); err != nil {
		return err
	}

	err = s.inventoryRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.InventoryRepository) error {
		entry, err := repo.FindForUpdate(ctx, characterID, itemID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return repo.Create(ctx, &model.InventoryEntry{
					CharacterID: character.ID,
					ItemID:      itemID,
					Quantity:    quantity,
				})
			}
			return err
		}
		entry.Quantity += quantity
		return repo.Save(ctx, entry)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.InventoryKey(characterID))
	return nil
}

// ConsumeItem subtracts from the ledger row, deleting it at exactly zero.
// Spending items is the player's action: owner only.
func (s *inventoryService) ConsumeItem(ctx context.Context, characterID, itemID uuid.UUID, quantity int, requesterID uuid.UUID) error {
	if quantity < 1 {
		return errors.ErrQuantityTooLow
	}

	character, _, err := s.loadCharacter(ctx, characterID)
	if err != nil {
		return err
	}
	if requesterID != character.OwnerID {
		return errors.ErrOwnerOnlyConsume
	}
	if err := s.checkItem(ctx, itemID); err != nil {
		return err
	}

	err = s.inventoryRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.InventoryRepository) error {
		entry, err := repo.FindForUpdate(ctx, characterID, itemID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrEntryNotFound
			}
			return err
		}

		newQty := entry.Quantity - quantity
		switch {
		case newQty < 0:
			return errors.ErrInsufficientItems
		case newQty == 0:
			return repo.Delete(ctx, characterID, itemID)
		default:
			entry.Quantity = newQty
			return repo.Save(ctx, entry)
		}
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.InventoryKey(characterID))
	return nil
}

// SetQuantity overwrites the ledger row with an absolute value. Zero
// deletes the row and is an idempotent no-op when it is already absent.
// GM only.
func (s *inventoryService) SetQuantity(ctx context.Context, characterID, itemID uuid.UUID, quantity int, requesterID uuid.UUID) error {
	if quantity < 0 {
		return errors.ErrNegativeQuantity
	}

	character, campaign, err := s.loadCharacter(ctx, characterID)
	if err != nil {
		return err
	}
	if requesterID != campaign.GMID {
		return errors.ErrNotCampaignGM
	}
	if err := s.checkItem(ctx, itemID); err != nil {
		return err
	}

	err = s.inventoryRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.InventoryRepository) error {
		entry, err := repo.FindForUpdate(ctx, characterID, itemID)
		if err != nil {
			if !stderrors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if quantity == 0 {
				return nil
			}
			return repo.Create(ctx, &model.InventoryEntry{
				CharacterID: character.ID,
				ItemID:      itemID,
				Quantity:    quantity,
			})
		}
		if quantity == 0 {
			return repo.Delete(ctx, characterID, itemID)
		}
		entry.Quantity = quantity
		return repo.Save(ctx, entry)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.InventoryKey(characterID))
	return nil
}

// RemoveItem deletes the ledger row unconditionally. Owner or GM.
func (s *inventoryService) RemoveItem(ctx context.Context, characterID, itemID, requesterID uuid.UUID) error {
	character, campaign, err := s.loadCharacter(ctx, characterID)
	if err != nil {
		return err
	}
	if requesterID != character.OwnerID && requesterID != campaign.GMID {
		return errors.ErrNotOwnerOrGM
	}

	if _, err := s.inventoryRepo.Find(ctx, characterID, itemID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrEntryNotFound
		}
		return err
	}
	if err := s.inventoryRepo.Delete(ctx, characterID, itemID); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.InventoryKey(characterID))
	return nil
}

// ChangeQuantity is the legacy combined mutation: a positive delta is a
// grant (GM only), a negative delta a consumption (owner only), zero is
// rejected.
func (s *inventoryService) ChangeQuantity(ctx context.Context, characterID, itemID uuid.UUID, delta int, requesterID uuid.UUID) error {
	switch {
	case delta > 0:
		return s.GiveItem(ctx, characterID, itemID, delta, requesterID)
	case delta < 0:
		return s.ConsumeItem(ctx, characterID, itemID, -delta, requesterID)
	default:
		return errors.ErrZeroDelta
	}
}

func (s *inventoryService) loadCharacter(ctx context.Context, characterID uuid.UUID) (*model.Character, *model.Campaign, error) {
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
	return character, campaign, nil
}

func (s *inventoryService) checkItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrItemNotFound
		}
		return err
	}
	return nil
}
