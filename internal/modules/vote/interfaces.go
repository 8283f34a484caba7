package vote

import (
	"context"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/repository"
)

type VoteRepository interface {
	Toggle(ctx context.Context, replyID, voterID string, kind domain.VoteKind) (domain.MyVote, domain.VoteCounts, error)
	CountsByReplies(ctx context.Context, replyIDs []string) (map[string]domain.VoteCounts, error)
	KindsByVoter(ctx context.Context, replyIDs []string, voterID string) (map[string]domain.VoteKind, error)
}

type ReplyRepository interface {
	GetByID(ctx context.Context, id string) (*repository.ReviewReplyRow, error)
}

// CountCache is an optional read-through cache for vote counts. SetMany
// overwrites; FillMany only writes keys that are absent.
type CountCache interface {
	GetMany(ctx context.Context, replyIDs []string) (map[string]domain.VoteCounts, error)
	SetMany(ctx context.Context, counts map[string]domain.VoteCounts) error
	FillMany(ctx context.Context, counts map[string]domain.VoteCounts) error
	Invalidate(ctx context.Context, replyID string) error
}
