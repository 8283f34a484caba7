package review

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/pkg/apperrors"
	"reviewdesk/internal/repository"
)

// GetThread returns the review followed by its replies in timestamp order.
// Items are sorted rather than assumed to be in insertion order.
func (s *Service) GetThread(ctx context.Context, kind domain.SourceKind, reviewID string) ([]domain.ThreadItem, error) {
	r, err := s.get(ctx, kind, reviewID)
	if err != nil {
		return nil, err
	}

	replies, err := s.replies.ListByReview(ctx, string(kind), reviewID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	names := s.resolver.NewBatch()

	items := make([]domain.ThreadItem, 0, len(replies)+1)
	items = append(items, domain.ThreadItem{
		ID:            r.ID,
		ItemType:      domain.ItemReview,
		SenderRole:    domain.RoleClient,
		SenderRef:     r.ClientRef,
		SenderDisplay: names.Resolve(ctx, r.ClientRef, domain.RoleClient),
		Title:         r.Title,
		Rating:        r.Rating,
		Content:       r.Content,
		CreatedAt:     r.CreatedAt,
	})
	for _, row := range replies {
		role := domain.ActorRole(row.SenderRole)
		items = append(items, domain.ThreadItem{
			ID:            row.ID,
			ItemType:      domain.ItemMessage,
			SenderRole:    role,
			SenderRef:     row.SenderRef,
			SenderDisplay: names.Resolve(ctx, row.SenderRef, role),
			Content:       row.Content,
			CreatedAt:     row.CreatedAt,
		})
	}

	sortThread(items)
	return items, nil
}

// sortThread orders by time; on a tie the review root comes first, then ids.
func sortThread(items []domain.ThreadItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.ItemType != b.ItemType {
			return a.ItemType == domain.ItemReview
		}
		return a.ID < b.ID
	})
}

// AddReply appends a participant message to a review's thread.
func (s *Service) AddReply(ctx context.Context, in AddReplyInput) (*domain.ReviewReply, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := in.Validate(); err != nil {
		return nil, apperrors.FromValidation(err)
	}

	src, err := s.Source(in.Source)
	if err != nil {
		return nil, err
	}
	if !src.Capabilities().Replies {
		return nil, apperrors.Capability("review source %s is read-only", src.Kind())
	}

	if _, err := s.get(ctx, in.Source, in.ReviewID); err != nil {
		return nil, err
	}

	row := &repository.ReviewReplyRow{
		Source:     string(in.Source),
		ReviewID:   in.ReviewID,
		SenderRole: string(in.SenderRole),
		SenderRef:  in.SenderRef,
		Content:    in.Content,
	}
	if err := s.replies.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}

	return &domain.ReviewReply{
		ID:         row.ID,
		ReviewID:   row.ReviewID,
		Source:     in.Source,
		SenderRole: in.SenderRole,
		SenderRef:  row.SenderRef,
		Content:    row.Content,
		CreatedAt:  row.CreatedAt,
	}, nil
}
