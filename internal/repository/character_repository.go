package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabletoprpg/internal/model"
)

// CharacterRepository defines character persistence operations.
type CharacterRepository interface {
	Create(ctx context.Context, character *model.Character) error
	Save(ctx context.Context, character *model.Character) error
	Delete(ctx context.Context, character *model.Character) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Character, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Character, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Character, error)
	ExistsByCampaign(ctx context.Context, campaignID uuid.UUID) (bool, error)
	ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)
	ExistsByCampaignAndOwner(ctx context.Context, campaignID, ownerID uuid.UUID) (bool, error)
	NameTaken(ctx context.Context, campaignID uuid.UUID, name string) (bool, error)
	DeleteByCampaignAndOwner(ctx context.Context, campaignID, ownerID uuid.UUID) error
}

type characterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository creates a new character repository.
func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

// Create creates a new character.
func (r *characterRepository) Create(ctx context.Context, character *model.Character) error {
	return r.db.WithContext(ctx).Create(character).Error
}

// Save persists changes to an existing character.
func (r *characterRepository) Save(ctx context.Context, character *model.Character) error {
	return r.db.WithContext(ctx).Save(character).Error
}

// Delete removes a character. Inventory rows cascade at the database level.
func (r *characterRepository) Delete(ctx context.Context, character *model.Character) error {
	return r.db.WithContext(ctx).Delete(character).Error
}

// FindByID finds a character by ID.
func (r *characterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Character, error) {
	var character model.Character
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&character).Error; err != nil {
		return nil, err
	}
	return &character, nil
}

// ListByCampaign lists characters in a campaign.
func (r *characterRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Character, error) {
	var characters []model.Character
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("name").
		Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

// ListByOwner lists characters owned by a user across campaigns.
func (r *characterRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Character, error) {
	var characters []model.Character
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

// ExistsByCampaign reports whether any character exists in the campaign.
func (r *characterRepository) ExistsByCampaign(ctx context.Context, campaignID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Character{}).
		Where("campaign_id = ?", campaignID).Count(&count).Error
	return count > 0, err
}

// ExistsByOwner reports whether the user owns any character.
func (r *characterRepository) ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Character{}).
		Where("owner_id = ?", ownerID).Count(&count).Error
	return count > 0, err
}

// ExistsByCampaignAndOwner reports whether the user already owns a
// character in the campaign.
func (r *characterRepository) ExistsByCampaignAndOwner(ctx context.Context, campaignID, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Character{}).
		Where("campaign_id = ? AND owner_id = ?", campaignID, ownerID).
		Count(&count).Error
	return count > 0, err
}

// NameTaken reports whether a character with the name exists in the
// campaign, case-insensitively.
func (r *characterRepository) NameTaken(ctx context.Context, campaignID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Character{}).
		Where("campaign_id = ? AND LOWER(name) = LOWER(?)", campaignID, name).
		Count(&count).Error
	return count > 0, err
}

// DeleteByCampaignAndOwner removes all of the user's characters within a
// campaign, used when a member is removed.
func (r *characterRepository) DeleteByCampaignAndOwner(ctx context.Context, campaignID, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("campaign_id = ? AND owner_id = ?", campaignID, ownerID).
		Delete(&model.Character{}).Error
}
