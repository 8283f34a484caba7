package vote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/pkg/apperrors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	votes   VoteRepository
	replies ReplyRepository
	cache   CountCache
}

// NewService wires the ledger. cache may be nil.
func NewService(votes VoteRepository, replies ReplyRepository, cache CountCache) *Service {
	return &Service{votes: votes, replies: replies, cache: cache}
}

// Toggle records one vote click. Repeating the current kind clears the vote,
// any other kind replaces it. Counts are recomputed from the ledger in the
// same transaction.
func (s *Service) Toggle(ctx context.Context, in ToggleInput) (*ToggleResult, error) {
	in.ReplyID = strings.TrimSpace(in.ReplyID)
	if err := in.Validate(); err != nil {
		return nil, apperrors.FromValidation(err)
	}

	if _, err := s.replies.GetByID(ctx, in.ReplyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reply %s not found", in.ReplyID)
		}
		return nil, fmt.Errorf("load reply: %w", err)
	}

	mine, counts, err := s.votes.Toggle(ctx, in.ReplyID, in.VoterID, in.Kind)
	if err != nil {
		return nil, fmt.Errorf("toggle vote: %w", err)
	}

	if s.cache != nil {
		// Overwrite with the counts from the transaction; a concurrent read
		// fill only writes absent keys and cannot undo this.
		if err := s.cache.SetMany(ctx, map[string]domain.VoteCounts{in.ReplyID: counts}); err != nil {
			log.Warn().Err(err).Str("reply_id", in.ReplyID).Msg("vote count cache write failed")
			if err := s.cache.Invalidate(ctx, in.ReplyID); err != nil {
				log.Warn().Err(err).Str("reply_id", in.ReplyID).Msg("vote count cache invalidation failed")
			}
		}
	}

	return &ToggleResult{ReplyID: in.ReplyID, Counts: counts, MyVote: mine}, nil
}

// GetCounts returns counts for every requested id, zero for replies nobody
// voted on.
func (s *Service) GetCounts(ctx context.Context, replyIDs []string) (map[string]domain.VoteCounts, error) {
	ids, err := normalizeIDs(replyIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.VoteCounts, len(ids))
	missing := ids

	if s.cache != nil {
		cached, err := s.cache.GetMany(ctx, ids)
		if err != nil {
			log.Warn().Err(err).Msg("vote count cache read failed")
		} else {
			missing = make([]string, 0, len(ids))
			for _, id := range ids {
				if c, ok := cached[id]; ok {
					out[id] = c
				} else {
					missing = append(missing, id)
				}
			}
		}
	}

	if len(missing) == 0 {
		return out, nil
	}

	fresh, err := s.votes.CountsByReplies(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}

	loaded := make(map[string]domain.VoteCounts, len(missing))
	for _, id := range missing {
		loaded[id] = fresh[id]
		out[id] = fresh[id]
	}

	if s.cache != nil {
		if err := s.cache.FillMany(ctx, loaded); err != nil {
			log.Warn().Err(err).Msg("vote count cache fill failed")
		}
	}
	return out, nil
}

// GetMyVotes returns the voter's position for every requested id.
func (s *Service) GetMyVotes(ctx context.Context, replyIDs []string, voterID string) (map[string]domain.MyVote, error) {
	ids, err := normalizeIDs(replyIDs)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(voterID) == "" {
		return nil, apperrors.Validation("voter id is required", nil)
	}

	kinds, err := s.votes.KindsByVoter(ctx, ids, voterID)
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}

	out := make(map[string]domain.MyVote, len(ids))
	for _, id := range ids {
		if k, ok := kinds[id]; ok {
			out[id] = domain.SomeVote(k)
		} else {
			out[id] = domain.NoVote()
		}
	}
	return out, nil
}

// normalizeIDs trims and de-duplicates while keeping request order.
func normalizeIDs(replyIDs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(replyIDs))
	ids := make([]string, 0, len(replyIDs))
	for _, id := range replyIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if err := (bulkIDs{IDs: ids}).Validate(); err != nil {
		return nil, apperrors.FromValidation(err)
	}
	return ids, nil
}
