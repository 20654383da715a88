package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabletoprpg/internal/model"
)

// ItemRepository defines item catalog persistence operations.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Save(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	NameTaken(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, name string) ([]model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Create creates a new catalog item.
func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Save persists changes to an existing item.
func (r *itemRepository) Save(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item from the catalog.
func (r *itemRepository) Delete(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

// FindByID finds an item by ID.
func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// NameTaken reports whether an item with the name exists, case-insensitively.
func (r *itemRepository) NameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("LOWER(name) = LOWER(?)", name).Count(&count).Error
	return count > 0, err
}

// Search lists items whose name contains the given fragment; an empty
// fragment lists the whole catalog.
func (r *itemRepository) Search(ctx context.Context, name string) ([]model.Item, error) {
	var items []model.Item
	q := r.db.WithContext(ctx).Order("name")
	if name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
