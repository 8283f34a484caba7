package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reviewdesk/internal/database"
	"reviewdesk/internal/domain"
	"reviewdesk/internal/modules/identity"
	"reviewdesk/internal/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Service struct {
	sources  []Source
	byKind   map[domain.SourceKind]Source
	replies  ReplyRepository
	resolver *identity.Resolver
}

func NewService(sources []Source, replies ReplyRepository, resolver *identity.Resolver) *Service {
	byKind := make(map[domain.SourceKind]Source, len(sources))
	for _, src := range sources {
		byKind[src.Kind()] = src
	}
	return &Service{
		sources:  sources,
		byKind:   byKind,
		replies:  replies,
		resolver: resolver,
	}
}

// Source returns the adapter for kind.
func (s *Service) Source(kind domain.SourceKind) (Source, error) {
	src, ok := s.byKind[kind]
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("unknown review source %q", kind), nil)
	}
	return src, nil
}

// Decorate resolves the display names of a single review.
func (s *Service) Decorate(ctx context.Context, r *domain.Review) {
	rows := []domain.Review{*r}
	s.resolver.NewBatch().Decorate(ctx, rows)
	*r = rows[0]
}

// List merges every source into one filtered, sorted page. The whole call
// fails if any source cannot be read; partial results are never returned.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	if err := f.Validate(); err != nil {
		return nil, apperrors.FromValidation(err)
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := filterReviews(all, f.Query, f.status())
	sortReviews(matched)

	rows := paginate(matched, f.Page, f.PerPage)
	s.resolver.NewBatch().Decorate(ctx, rows)

	return &ListResult{
		Rows:       rows,
		TotalCount: len(matched),
		Page:       f.Page,
		PerPage:    f.PerPage,
		TotalPages: totalPages(len(matched), f.PerPage),
	}, nil
}

// Stats counts the unfiltered merged set per normalised status.
func (s *Service) Stats(ctx context.Context) (*StatsResult, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[domain.ReviewStatus]int, len(domain.ReviewStatuses))
	for _, st := range domain.ReviewStatuses {
		byStatus[st] = 0
	}
	for _, r := range all {
		byStatus[r.Status]++
	}
	return &StatsResult{Total: len(all), ByStatus: byStatus}, nil
}

// Get returns one decorated review.
func (s *Service) Get(ctx context.Context, kind domain.SourceKind, id string) (*domain.Review, error) {
	r, err := s.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	s.Decorate(ctx, &r)
	return &r, nil
}

// Create writes a new pending review to a source that accepts writes.
func (s *Service) Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	if err := in.Validate(); err != nil {
		return nil, apperrors.FromValidation(err)
	}

	src, err := s.Source(in.Source)
	if err != nil {
		return nil, err
	}
	writer, ok := src.(ReviewWriter)
	if !ok || !src.Capabilities().Create {
		return nil, apperrors.Capability("review source %s does not accept new reviews", src.Kind())
	}

	created, err := writer.Insert(ctx, in)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("a review already exists for this service request")
		}
		return nil, fmt.Errorf("create %s review: %w", src.Kind(), err)
	}

	s.Decorate(ctx, &created)
	return &created, nil
}

func (s *Service) get(ctx context.Context, kind domain.SourceKind, id string) (domain.Review, error) {
	src, err := s.Source(kind)
	if err != nil {
		return domain.Review{}, err
	}
	if strings.TrimSpace(id) == "" {
		return domain.Review{}, apperrors.Validation("review id is required", nil)
	}

	r, err := src.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, apperrors.NotFound("review %s/%s not found", kind, id)
		}
		return domain.Review{}, apperrors.SourceUnavailable(string(kind), err)
	}
	return r, nil
}

func (s *Service) loadAll(ctx context.Context) ([]domain.Review, error) {
	results := make([][]domain.Review, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		g.Go(func() error {
			rows, err := src.Load(gctx)
			if err != nil {
				return apperrors.SourceUnavailable(string(src.Kind()), err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, rows := range results {
		n += len(rows)
	}
	all := make([]domain.Review, 0, n)
	for _, rows := range results {
		all = append(all, rows...)
	}
	return all, nil
}
