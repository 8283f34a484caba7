package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlatformReviewRow is the native shape of the platform_reviews table.
// Actor columns hold authentication account ids.
type PlatformReviewRow struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AuthorID  string    `gorm:"column:author_id;not null;index"`
	TargetID  string    `gorm:"column:target_id;not null;index"`
	ContactID *string   `gorm:"column:contact_id;index"`
	Rating    int       `gorm:"column:rating;not null"`
	Title     *string   `gorm:"column:title"`
	Content   string    `gorm:"column:content;not null"`
	Status    *string   `gorm:"column:status;type:varchar(16)"`
	IsPublic  bool      `gorm:"column:is_public;not null;default:false"`
	IsFlagged bool      `gorm:"column:is_flagged;not null;default:false"`
	AdminNote *string   `gorm:"column:admin_note"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PlatformReviewRow) TableName() string { return "platform_reviews" }

func (r *PlatformReviewRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ModerationUpdate is the set of columns a moderation action overwrites.
// A nil Note leaves the stored note untouched.
type ModerationUpdate struct {
	Status   string
	IsPublic bool
	Note     *string
}

type PlatformReviewRepository struct {
	db *gorm.DB
}

func NewPlatformReviewRepository(db *gorm.DB) *PlatformReviewRepository {
	return &PlatformReviewRepository{db: db}
}

func (r *PlatformReviewRepository) ListAll(ctx context.Context) ([]PlatformReviewRow, error) {
	var rows []PlatformReviewRow
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *PlatformReviewRepository) GetByID(ctx context.Context, id string) (*PlatformReviewRow, error) {
	var row PlatformReviewRow
	tx := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *PlatformReviewRepository) Create(ctx context.Context, row *PlatformReviewRow) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *PlatformReviewRepository) UpdateModeration(ctx context.Context, id string, upd ModerationUpdate) (*PlatformReviewRow, error) {
	values := map[string]any{
		"status":     upd.Status,
		"is_public":  upd.IsPublic,
		"updated_at": time.Now().UTC(),
	}
	if upd.Note != nil {
		values["admin_note"] = nullableNote(*upd.Note)
	}

	tx := r.db.WithContext(ctx).
		Model(&PlatformReviewRow{}).
		Where("id = ?", id).
		Updates(values)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func nullableNote(note string) *string {
	if note == "" {
		return nil
	}
	return &note
}
