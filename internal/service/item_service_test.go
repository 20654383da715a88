package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tabletoprpg/internal/errors"
	"tabletoprpg/internal/model"
)

func TestItemService_CreateItem(t *testing.T) {
	adminID := uuid.New()
	playerID := uuid.New()

	admin := func() *model.User {
		return &model.User{ID: adminID, Roles: model.RoleSet{model.RolePlayer, model.RoleAdmin}}
	}
	player := func() *model.User {
		return &model.User{ID: playerID, Roles: model.RoleSet{model.RolePlayer}}
	}

	validCreate := func() ItemCreate {
		return ItemCreate{
			Name:        "Healing Potion",
			Description: "Restores a small amount of vitality.",
			Weight:      decimal.NewFromFloat(0.5),
			Price:       50,
		}
	}

	t.Run("admin creates an item", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, adminID).Return(admin(), nil)
		itemRepo.On("NameTaken", mock.Anything, "Healing Potion").Return(false, nil)
		itemRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Item")).Return(nil)

		service := NewItemService(itemRepo, new(MockInventoryRepository), userRepo)
		item, err := service.CreateItem(context.Background(), validCreate(), adminID)

		assert.NoError(t, err)
		assert.Equal(t, "Healing Potion", item.Name)
	})

	t.Run("players cannot author the catalog", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, playerID).Return(player(), nil)

		service := NewItemService(new(MockItemRepository), new(MockInventoryRepository), userRepo)
		_, err := service.CreateItem(context.Background(), validCreate(), playerID)
		assert.Equal(t, errors.ErrAdminOnly, err)
	})

	t.Run("duplicate name", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, adminID).Return(admin(), nil)
		itemRepo.On("NameTaken", mock.Anything, "Healing Potion").Return(true, nil)

		service := NewItemService(itemRepo, new(MockInventoryRepository), userRepo)
		_, err := service.CreateItem(context.Background(), validCreate(), adminID)
		assert.Equal(t, errors.ErrItemNameTaken, err)
	})

	t.Run("negative weight", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, adminID).Return(admin(), nil)

		req := validCreate()
		req.Weight = decimal.NewFromFloat(-1)

		service := NewItemService(new(MockItemRepository), new(MockInventoryRepository), userRepo)
		_, err := service.CreateItem(context.Background(), req, adminID)
		assert.Equal(t, errors.ErrNegativeWeight, err)
	})

	t.Run("negative price", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, adminID).Return(admin(), nil)

		req := validCreate()
		req.Price = -1

		service := NewItemService(new(MockItemRepository), new(MockInventoryRepository), userRepo)
		_, err := service.CreateItem(context.Background(), req, adminID)
		assert.Equal(t, errors.ErrNegativePrice, err)
	})
}

func TestItemService_DeleteItem(t *testing.T) {
	adminID := uuid.New()
	gmUserID := uuid.New()
	playerID := uuid.New()
	itemID := uuid.New()

	item := func() *model.Item {
		return &model.Item{ID: itemID, Name: "Healing Potion"}
	}

	t.Run("game master deletes an unreferenced item", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		inventoryRepo := new(MockInventoryRepository)
		userRepo := new(MockUserRepository)
		itemRepo.On("FindByID", mock.Anything, itemID).Return(item(), nil)
		userRepo.On("FindByID", mock.Anything, gmUserID).Return(&model.User{
			ID: gmUserID, Roles: model.RoleSet{model.RolePlayer, model.RoleGameMaster},
		}, nil)
		inventoryRepo.On("ExistsByItem", mock.Anything, itemID).Return(false, nil)
		itemRepo.On("Delete", mock.Anything, mock.AnythingOfType("*model.Item")).Return(nil)

		service := NewItemService(itemRepo, inventoryRepo, userRepo)
		assert.NoError(t, service.DeleteItem(context.Background(), itemID, gmUserID))
	})

	t.Run("blocked while inventories reference it", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		inventoryRepo := new(MockInventoryRepository)
		userRepo := new(MockUserRepository)
		itemRepo.On("FindByID", mock.Anything, itemID).Return(item(), nil)
		userRepo.On("FindByID", mock.Anything, adminID).Return(&model.User{
			ID: adminID, Roles: model.RoleSet{model.RoleAdmin},
		}, nil)
		inventoryRepo.On("ExistsByItem", mock.Anything, itemID).Return(true, nil)

		service := NewItemService(itemRepo, inventoryRepo, userRepo)
		err := service.DeleteItem(context.Background(), itemID, adminID)
		assert.Equal(t, errors.ErrItemInUse, err)
	})

	t.Run("plain players may not delete", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		userRepo := new(MockUserRepository)
		itemRepo.On("FindByID", mock.Anything, itemID).Return(item(), nil)
		userRepo.On("FindByID", mock.Anything, playerID).Return(&model.User{
			ID: playerID, Roles: model.RoleSet{model.RolePlayer},
		}, nil)

		service := NewItemService(itemRepo, new(MockInventoryRepository), userRepo)
		err := service.DeleteItem(context.Background(), itemID, playerID)
		assert.Equal(t, errors.ErrItemDeleteDenied, err)
	})

	t.Run("unknown item", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		itemRepo.On("FindByID", mock.Anything, itemID).Return(nil, gorm.ErrRecordNotFound)

		service := NewItemService(itemRepo, new(MockInventoryRepository), new(MockUserRepository))
		err := service.DeleteItem(context.Background(), itemID, adminID)
		assert.Equal(t, errors.ErrItemNotFound, err)
	})
}

func TestItemService_UpdateItem(t *testing.T) {
	adminID := uuid.New()
	itemID := uuid.New()

	setup := func() (*MockItemRepository, *MockUserRepository) {
		itemRepo := new(MockItemRepository)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, adminID).Return(&model.User{
			ID: adminID, Roles: model.RoleSet{model.RoleAdmin},
		}, nil)
		itemRepo.On("FindByID", mock.Anything, itemID).Return(&model.Item{
			ID: itemID, Name: "Healing Potion", Price: 50,
		}, nil)
		return itemRepo, userRepo
	}

	t.Run("rename re-checks uniqueness", func(t *testing.T) {
		itemRepo, userRepo := setup()
		itemRepo.On("NameTaken", mock.Anything, "Greater Healing Potion").Return(true, nil)

		service := NewItemService(itemRepo, new(MockInventoryRepository), userRepo)
		name := "Greater Healing Potion"
		_, err := service.UpdateItem(context.Background(), itemID, ItemPatch{Name: &name}, adminID)
		assert.Equal(t, errors.ErrItemNameTaken, err)
	})

	t.Run("price update", func(t *testing.T) {
		itemRepo, userRepo := setup()
		itemRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Item")).Return(nil)

		service := NewItemService(itemRepo, new(MockInventoryRepository), userRepo)
		price := 60
		item, err := service.UpdateItem(context.Background(), itemID, ItemPatch{Price: &price}, adminID)

		assert.NoError(t, err)
		assert.Equal(t, 60, item.Price)
	})
}

func TestItemService_Search(t *testing.T) {
	itemRepo := new(MockItemRepository)
	itemRepo.On("Search", mock.Anything, "potion").Return([]model.Item{
		{Name: "Healing Potion"},
	}, nil)

	service := NewItemService(itemRepo, new(MockInventoryRepository), new(MockUserRepository))
	items, err := service.Search(context.Background(), "  potion ")

	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
