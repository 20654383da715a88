package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tabletoprpg/internal/errors"
	"tabletoprpg/internal/model"
	"tabletoprpg/internal/repository"
)

// ItemCreate carries the fields of a new catalog item.
type ItemCreate struct {
	Name        string
	Description string
	Weight      decimal.Decimal
	Price       int
}

// ItemPatch carries the optional fields of an item update; nil fields are
// left unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Weight      *decimal.Decimal
	Price       *int
}

// ItemService owns the global item catalog. Authoring the catalog is an
// ADMIN action; deletion additionally admits GAME_MASTER but is blocked
// while any character inventory still references the item.
type ItemService interface {
	CreateItem(ctx context.Context, req ItemCreate, requesterID uuid.UUID) (*model.Item, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, patch ItemPatch, requesterID uuid.UUID) (*model.Item, error)
	DeleteItem(ctx context.Context, itemID, requesterID uuid.UUID) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*model.Item, error)
	Search(ctx context.Context, name string) ([]model.Item, error)
}

type itemService struct {
	itemRepo      repository.ItemRepository
	inventoryRepo repository.InventoryRepository
	userRepo      repository.UserRepository
}

// NewItemService creates a new item service.
func NewItemService(
	itemRepo repository.ItemRepository,
	inventoryRepo repository.InventoryRepository,
	userRepo repository.UserRepository,
) ItemService {
	return &itemService{
		itemRepo:      itemRepo,
		inventoryRepo: inventoryRepo,
		userRepo:      userRepo,
	}
}

// CreateItem adds a catalog item. ADMIN only.
func (s *itemService) CreateItem(ctx context.Context, req ItemCreate, requesterID uuid.UUID) (*model.Item, error) {
	requester, err := s.loadUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.Roles.Has(model.RoleAdmin) {
		return nil, errors.ErrAdminOnly
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.ErrBlankItemName
	}
	if req.Weight.IsNegative() {
		return nil, errors.ErrNegativeWeight
	}
	if req.Price < 0 {
		return nil, errors.ErrNegativePrice
	}

	taken, err := s.itemRepo.NameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.ErrItemNameTaken
	}

	item := &model.Item{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Weight:      req.Weight,
		Price:       req.Price,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem applies a partial update. ADMIN only. Renames re-check
// uniqueness excluding the item's own current name.
func (s *itemService) UpdateItem(ctx context.Context, itemID uuid.UUID, patch ItemPatch, requesterID uuid.UUID) (*model.Item, error) {
	requester, err := s.loadUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.Roles.Has(model.RoleAdmin) {
		return nil, errors.ErrAdminOnly
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errors.ErrBlankItemName
		}
		if !strings.EqualFold(name, item.Name) {
			taken, err := s.itemRepo.NameTaken(ctx, name)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, errors.ErrItemNameTaken
			}
		}
		item.Name = name
	}
	if patch.Description != nil {
		item.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Weight != nil {
		if patch.Weight.IsNegative() {
			return nil, errors.ErrNegativeWeight
		}
		item.Weight = *patch.Weight
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, errors.ErrNegativePrice
		}
		item.Price = *patch.Price
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a catalog item. ADMIN or GAME_MASTER, and only when
// no inventory references it.
func (s *itemService) DeleteItem(ctx context.Context, itemID, requesterID uuid.UUID) error {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return err
	}

	requester, err := s.loadUser(ctx, requesterID)
	if err != nil {
		return err
	}
	if !requester.Roles.Has(model.RoleAdmin) && !requester.Roles.Has(model.RoleGameMaster) {
		return errors.ErrItemDeleteDenied
	}

	inUse, err := s.inventoryRepo.ExistsByItem(ctx, itemID)
	if err != nil {
		return err
	}
	if inUse {
		return errors.ErrItemInUse
	}

	return s.itemRepo.Delete(ctx, item)
}

// GetItem returns a catalog item by id.
func (s *itemService) GetItem(ctx context.Context, itemID uuid.UUID) (*model.Item, error) {
	return s.loadItem(ctx, itemID)
}

// Search lists catalog items matching a name fragment.
func (s *itemService) Search(ctx context.Context, name string) ([]model.Item, error) {
	return s.itemRepo.Search(ctx, strings.TrimSpace(name))
}

func (s *itemService) loadItem(ctx context.Context, itemID uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) loadUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
