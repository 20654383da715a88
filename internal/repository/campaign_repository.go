package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabletoprpg/internal/model"
)

// CampaignRepository defines campaign persistence operations.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	Save(ctx context.Context, campaign *model.Campaign) error
	Delete(ctx context.Context, campaign *model.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error)
	ListByGM(ctx context.Context, gmID uuid.UUID) ([]model.Campaign, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Campaign, error)
	ExistsByGM(ctx context.Context, gmID uuid.UUID) (bool, error)
}

type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository.
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// Create creates a new campaign.
func (r *campaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

// Save persists changes to an existing campaign.
func (r *campaignRepository) Save(ctx context.Context, campaign *model.Campaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

// Delete removes a campaign. Member and journal rows cascade at the
// database level.
func (r *campaignRepository) Delete(ctx context.Context, campaign *model.Campaign) error {
	return r.db.WithContext(ctx).Delete(campaign).Error
}

// FindByID finds a campaign by ID.
func (r *campaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ListByGM lists campaigns owned by the given GM, newest first.
func (r *campaignRepository) ListByGM(ctx context.Context, gmID uuid.UUID) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := r.db.WithContext(ctx).
		Where("gm_id = ?", gmID).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ListByMember lists campaigns where the user participates (GM or player),
// newest first.
func (r *campaignRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := r.db.WithContext(ctx).
		Joins("JOIN campaign_members ON campaign_members.campaign_id = campaigns.id").
		Where("campaign_members.user_id = ?", userID).
		Order("campaigns.created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ExistsByGM reports whether the user owns any campaign.
func (r *campaignRepository) ExistsByGM(ctx context.Context, gmID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("gm_id = ?", gmID).Count(&count).Error
	return count > 0, err
}
