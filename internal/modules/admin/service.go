package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/modules/review"
	"reviewdesk/internal/pkg/apperrors"
	"reviewdesk/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	reviews ReviewCatalog
}

func NewService(reviews ReviewCatalog) *Service {
	return &Service{reviews: reviews}
}

// -------------------- Reviews moderation --------------------

func (s *Service) ListReviews(ctx context.Context, q ReviewListQuery) (*review.ListResult, error) {
	return s.reviews.List(ctx, review.ListFilter{
		Query:   q.Query,
		Status:  q.Status,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}

func (s *Service) ReviewStats(ctx context.Context) (*review.StatsResult, error) {
	return s.reviews.Stats(ctx)
}

// ReviewThread returns the thread together with the moderator view of the
// review, admin note included.
func (s *Service) ReviewThread(ctx context.Context, kind domain.SourceKind, id string) (*ThreadResponse, error) {
	rv, err := s.reviews.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	items, err := s.reviews.GetThread(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return &ThreadResponse{Review: rv, Items: items}, nil
}

// ModerateReview applies publish, hide or reject. Sources that cannot be
// moderated are refused before any storage access. There is no transition
// table: any action is valid from any status and the last write wins.
func (s *Service) ModerateReview(ctx context.Context, in ModerateInput) (*domain.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, apperrors.FromValidation(err)
	}
	status, public, _ := in.Action.Outcome()

	src, err := s.reviews.Source(in.Source)
	if err != nil {
		return nil, err
	}
	store, ok := src.(review.ModerationStore)
	if !src.Capabilities().Moderation || !ok {
		return nil, apperrors.Capability("review source %s cannot be moderated", src.Kind())
	}

	upd := repository.ModerationUpdate{Status: string(status), IsPublic: public}
	if in.Note != nil {
		note := strings.TrimSpace(*in.Note)
		upd.Note = &note
	}

	updated, err := store.UpdateModeration(ctx, in.ReviewID, upd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review %s/%s not found", in.Source, in.ReviewID)
		}
		return nil, fmt.Errorf("moderate %s review: %w", in.Source, err)
	}

	log.Info().
		Str("admin_id", in.AdminID).
		Str("source", string(in.Source)).
		Str("review_id", in.ReviewID).
		Str("action", string(in.Action)).
		Bool("note_changed", in.Note != nil).
		Msg("admin action: moderate review")

	s.reviews.Decorate(ctx, &updated)
	return &updated, nil
}
