package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tabletoprpg/internal/model"
)

// InventoryRepository defines inventory ledger persistence operations.
// Quantity mutations must run inside WithTransaction with the ledger row
// locked via FindForUpdate so concurrent give/consume/set calls on the same
// (character, item) pair serialize instead of losing updates.
type InventoryRepository interface {
	Create(ctx context.Context, entry *model.InventoryEntry) error
	Save(ctx context.Context, entry *model.InventoryEntry) error
	Delete(ctx context.Context, characterID, itemID uuid.UUID) error
	Find(ctx context.Context, characterID, itemID uuid.UUID) (*model.InventoryEntry, error)
	FindForUpdate(ctx context.Context, characterID, itemID uuid.UUID) (*model.InventoryEntry, error)
	ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]model.InventoryEntry, error)
	ExistsByItem(ctx context.Context, itemID uuid.UUID) (bool, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo InventoryRepository) error) error
}

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository.
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// Create inserts a new ledger row.
func (r *inventoryRepository) Create(ctx context.Context, entry *model.InventoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Save persists a quantity change on an existing ledger row.
func (r *inventoryRepository) Save(ctx context.Context, entry *model.InventoryEntry) error {
	return r.db.WithContext(ctx).Model(&model.InventoryEntry{}).
		Where("character_id = ? AND item_id = ?", entry.CharacterID, entry.ItemID).
		Update("quantity", entry.Quantity).Error
}

// Delete removes a ledger row.
func (r *inventoryRepository) Delete(ctx context.Context, characterID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("character_id = ? AND item_id = ?", characterID, itemID).
		Delete(&model.InventoryEntry{}).Error
}

// Find loads the ledger row for the (character, item) pair.
func (r *inventoryRepository) Find(ctx context.Context, characterID, itemID uuid.UUID) (*model.InventoryEntry, error) {
	var entry model.InventoryEntry
	if err := r.db.WithContext(ctx).
		Where("character_id = ? AND item_id = ?", characterID, itemID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindForUpdate loads the ledger row with a row-level lock. Only meaningful
// inside WithTransaction.
func (r *inventoryRepository) FindForUpdate(ctx context.Context, characterID, itemID uuid.UUID) (*model.InventoryEntry, error) {
	var entry model.InventoryEntry
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("character_id = ? AND item_id = ?", characterID, itemID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByCharacter lists a character's inventory.
func (r *inventoryRepository) ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]model.InventoryEntry, error) {
	var entries []model.InventoryEntry
	if err := r.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("item_id").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ExistsByItem reports whether any character holds the item.
func (r *inventoryRepository) ExistsByItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InventoryEntry{}).
		Where("item_id = ?", itemID).Count(&count).Error
	return count > 0, err
}

// WithTransaction executes a function within a database transaction.
func (r *inventoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo InventoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &inventoryRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
