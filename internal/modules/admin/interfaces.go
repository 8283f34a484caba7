package admin

import (
	"context"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/modules/review"
)

// ReviewCatalog is the unified read side plus source lookup used by
// moderation. *review.Service implements it.
type ReviewCatalog interface {
	Source(kind domain.SourceKind) (review.Source, error)
	Decorate(ctx context.Context, r *domain.Review)
	List(ctx context.Context, f review.ListFilter) (*review.ListResult, error)
	Stats(ctx context.Context) (*review.StatsResult, error)
	Get(ctx context.Context, kind domain.SourceKind, id string) (*domain.Review, error)
	GetThread(ctx context.Context, kind domain.SourceKind, reviewID string) ([]domain.ThreadItem, error)
}
