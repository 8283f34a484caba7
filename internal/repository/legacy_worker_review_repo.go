package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LegacyWorkerReviewRow is the pre-migration worker_reviews table. It has no
// moderation columns and no updated_at; the repository is read-only apart
// from seeding.
type LegacyWorkerReviewRow struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	WorkerID       string    `gorm:"column:worker_id;not null;index"`
	ReviewerUserID string    `gorm:"column:reviewer_user_id;not null"`
	Note           *int      `gorm:"column:note"`
	Comment        *string   `gorm:"column:comment"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (LegacyWorkerReviewRow) TableName() string { return "worker_reviews" }

func (r *LegacyWorkerReviewRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type LegacyWorkerReviewRepository struct {
	db *gorm.DB
}

func NewLegacyWorkerReviewRepository(db *gorm.DB) *LegacyWorkerReviewRepository {
	return &LegacyWorkerReviewRepository{db: db}
}

func (r *LegacyWorkerReviewRepository) ListAll(ctx context.Context) ([]LegacyWorkerReviewRow, error) {
	var rows []LegacyWorkerReviewRow
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *LegacyWorkerReviewRepository) GetByID(ctx context.Context, id string) (*LegacyWorkerReviewRow, error) {
	var row LegacyWorkerReviewRow
	tx := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}
