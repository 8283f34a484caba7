package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewReplyRow stores thread messages. Rows are keyed by (source, review_id)
// because review ids are only unique within their source table.
type ReviewReplyRow struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Source     string    `gorm:"column:source;type:varchar(32);not null;index:idx_review_replies_review,priority:1"`
	ReviewID   string    `gorm:"column:review_id;type:varchar(36);not null;index:idx_review_replies_review,priority:2"`
	SenderRole string    `gorm:"column:sender_role;type:varchar(16);not null"`
	SenderRef  string    `gorm:"column:sender_ref;not null"`
	Content    string    `gorm:"column:content;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (ReviewReplyRow) TableName() string { return "review_replies" }

func (r *ReviewReplyRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type ReplyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

func (r *ReplyRepository) Create(ctx context.Context, row *ReviewReplyRow) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *ReplyRepository) GetByID(ctx context.Context, id string) (*ReviewReplyRow, error) {
	var row ReviewReplyRow
	tx := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// ListByReview returns a review's replies oldest first.
func (r *ReplyRepository) ListByReview(ctx context.Context, source, reviewID string) ([]ReviewReplyRow, error) {
	var rows []ReviewReplyRow
	err := r.db.WithContext(ctx).
		Where("source = ? AND review_id = ?", source, reviewID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
