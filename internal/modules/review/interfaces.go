package review

import (
	"context"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/repository"
)

// Capabilities describes what a source's storage supports beyond reads.
type Capabilities struct {
	Moderation bool
	Replies    bool
	Create     bool
}

// Source adapts one physical review table to the common projection.
// Get returns gorm.ErrRecordNotFound for unknown ids.
type Source interface {
	Kind() domain.SourceKind
	Capabilities() Capabilities
	Load(ctx context.Context) ([]domain.Review, error)
	Get(ctx context.Context, id string) (domain.Review, error)
}

// ModerationStore is implemented by sources whose Capabilities report
// Moderation.
type ModerationStore interface {
	UpdateModeration(ctx context.Context, id string, upd repository.ModerationUpdate) (domain.Review, error)
}

// ReviewWriter is implemented by sources whose Capabilities report Create.
type ReviewWriter interface {
	Insert(ctx context.Context, in CreateReviewInput) (domain.Review, error)
}

type ReplyRepository interface {
	Create(ctx context.Context, row *repository.ReviewReplyRow) error
	ListByReview(ctx context.Context, source, reviewID string) ([]repository.ReviewReplyRow, error)
}
