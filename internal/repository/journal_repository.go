package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabletoprpg/internal/model"
)

// JournalFilter narrows a campaign journal listing. Zero values mean "no
// filter" for Type; a nil Visibility returns entries of any visibility.
type JournalFilter struct {
	Type       string
	Visibility *model.JournalVisibility
}

// JournalRepository defines journal entry persistence operations.
type JournalRepository interface {
	Create(ctx context.Context, entry *model.JournalEntry) error
	Save(ctx context.Context, entry *model.JournalEntry) error
	Delete(ctx context.Context, entry *model.JournalEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.JournalEntry, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, filter JournalFilter) ([]model.JournalEntry, error)
	ListPersonal(ctx context.Context, authorID uuid.UUID) ([]model.JournalEntry, error)
	ExistsByAuthor(ctx context.Context, authorID uuid.UUID) (bool, error)
}

type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new journal repository.
func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

// Create creates a new journal entry.
func (r *journalRepository) Create(ctx context.Context, entry *model.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Save persists changes to an existing journal entry.
func (r *journalRepository) Save(ctx context.Context, entry *model.JournalEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a journal entry.
func (r *journalRepository) Delete(ctx context.Context, entry *model.JournalEntry) error {
	return r.db.WithContext(ctx).Delete(entry).Error
}

// FindByID finds a journal entry by ID.
func (r *journalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByCampaign lists a campaign's entries, newest first, honoring the
// optional type and visibility filters.
func (r *journalRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID, filter JournalFilter) ([]model.JournalEntry, error) {
	q := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC")
	if filter.Type != "" {
		q = q.Where("LOWER(type) = LOWER(?)", filter.Type)
	}
	if filter.Visibility != nil {
		q = q.Where("visibility = ?", *filter.Visibility)
	}

	var entries []model.JournalEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListPersonal lists campaign-less entries authored by the user, newest first.
func (r *journalRepository) ListPersonal(ctx context.Context, authorID uuid.UUID) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	if err := r.db.WithContext(ctx).
		Where("campaign_id IS NULL AND author_id = ?", authorID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ExistsByAuthor reports whether the user has authored any entry.
func (r *journalRepository) ExistsByAuthor(ctx context.Context, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.JournalEntry{}).
		Where("author_id = ?", authorID).Count(&count).Error
	return count > 0, err
}
