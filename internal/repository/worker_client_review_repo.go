package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkerClientReviewRow is the native shape of worker_client_reviews. Actor
// columns hold profile ids, not account ids, and the moderation columns were
// added later so they are nullable.
type WorkerClientReviewRow struct {
	ID               string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	ClientProfileID  string    `gorm:"column:client_profile_id;not null;index"`
	WorkerProfileID  string    `gorm:"column:worker_profile_id;not null;index"`
	ServiceRequestID *string   `gorm:"column:service_request_id;uniqueIndex"`
	Score            int       `gorm:"column:score;not null"`
	Comment          string    `gorm:"column:comment;not null"`
	Status           *string   `gorm:"column:status;type:varchar(16)"`
	IsPublic         *bool     `gorm:"column:is_public"`
	IsFlagged        *bool     `gorm:"column:is_flagged"`
	ModeratorNote    *string   `gorm:"column:moderator_note"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (WorkerClientReviewRow) TableName() string { return "worker_client_reviews" }

func (r *WorkerClientReviewRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type WorkerClientReviewRepository struct {
	db *gorm.DB
}

func NewWorkerClientReviewRepository(db *gorm.DB) *WorkerClientReviewRepository {
	return &WorkerClientReviewRepository{db: db}
}

func (r *WorkerClientReviewRepository) ListAll(ctx context.Context) ([]WorkerClientReviewRow, error) {
	var rows []WorkerClientReviewRow
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *WorkerClientReviewRepository) GetByID(ctx context.Context, id string) (*WorkerClientReviewRow, error) {
	var row WorkerClientReviewRow
	tx := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *WorkerClientReviewRepository) Create(ctx context.Context, row *WorkerClientReviewRow) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *WorkerClientReviewRepository) UpdateModeration(ctx context.Context, id string, upd ModerationUpdate) (*WorkerClientReviewRow, error) {
	values := map[string]any{
		"status":     upd.Status,
		"is_public":  upd.IsPublic,
		"updated_at": time.Now().UTC(),
	}
	if upd.Note != nil {
		values["moderator_note"] = nullableNote(*upd.Note)
	}

	tx := r.db.WithContext(ctx).
		Model(&WorkerClientReviewRow{}).
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
