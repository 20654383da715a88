package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabletoprpg/internal/model"
)

// MemberRepository defines campaign membership persistence operations.
type MemberRepository interface {
	Create(ctx context.Context, member *model.CampaignMember) error
	Save(ctx context.Context, member *model.CampaignMember) error
	Delete(ctx context.Context, member *model.CampaignMember) error
	Find(ctx context.Context, campaignID, userID uuid.UUID) (*model.CampaignMember, error)
	Exists(ctx context.Context, campaignID, userID uuid.UUID) (bool, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.CampaignMember, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, members MemberRepository, characters CharacterRepository) error) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new membership repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create inserts a membership row. A concurrent identical insert surfaces
// as gorm.ErrDuplicatedKey for the caller to convert into the idempotent
// outcome.
func (r *memberRepository) Create(ctx context.Context, member *model.CampaignMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Save persists a role change on an existing membership row.
func (r *memberRepository) Save(ctx context.Context, member *model.CampaignMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete removes a membership row.
func (r *memberRepository) Delete(ctx context.Context, member *model.CampaignMember) error {
	return r.db.WithContext(ctx).
		Where("campaign_id = ? AND user_id = ?", member.CampaignID, member.UserID).
		Delete(&model.CampaignMember{}).Error
}

// Find loads the membership row for the (campaign, user) pair.
func (r *memberRepository) Find(ctx context.Context, campaignID, userID uuid.UUID) (*model.CampaignMember, error) {
	var member model.CampaignMember
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND user_id = ?", campaignID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Exists reports whether the user is a member of the campaign.
func (r *memberRepository) Exists(ctx context.Context, campaignID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CampaignMember{}).
		Where("campaign_id = ? AND user_id = ?", campaignID, userID).
		Count(&count).Error
	return count > 0, err
}

// WithTransaction executes a function within a database transaction. The
// callback also receives a transaction-scoped character repository so
// membership removal can cascade the member's characters atomically.
func (r *memberRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, members MemberRepository, characters CharacterRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewMemberRepository(tx), NewCharacterRepository(tx))
	})
}

// ListByCampaign lists members of a campaign in join order.
func (r *memberRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.CampaignMember, error) {
	var members []model.CampaignMember
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("joined_at").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
