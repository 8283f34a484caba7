package review

import (
	"context"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/repository"
)

// NewSources returns the adapters for every review table in merge order.
func NewSources(
	platform *repository.PlatformReviewRepository,
	workerClient *repository.WorkerClientReviewRepository,
	legacy *repository.LegacyWorkerReviewRepository,
) []Source {
	return []Source{
		&platformSource{repo: platform},
		&workerClientSource{repo: workerClient},
		&legacySource{repo: legacy},
	}
}

// -------------------- platform_reviews --------------------

type platformSource struct {
	repo *repository.PlatformReviewRepository
}

func (s *platformSource) Kind() domain.SourceKind { return domain.SourcePlatformReview }

func (s *platformSource) Capabilities() Capabilities {
	return Capabilities{Moderation: true, Replies: true, Create: true}
}

func (s *platformSource) Load(ctx context.Context) ([]domain.Review, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizePlatform(row))
	}
	return out, nil
}

func (s *platformSource) Get(ctx context.Context, id string) (domain.Review, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	return normalizePlatform(*row), nil
}

func (s *platformSource) UpdateModeration(ctx context.Context, id string, upd repository.ModerationUpdate) (domain.Review, error) {
	row, err := s.repo.UpdateModeration(ctx, id, upd)
	if err != nil {
		return domain.Review{}, err
	}
	return normalizePlatform(*row), nil
}

func (s *platformSource) Insert(ctx context.Context, in CreateReviewInput) (domain.Review, error) {
	row := &repository.PlatformReviewRow{
		AuthorID:  in.ClientRef,
		TargetID:  in.WorkerRef,
		ContactID: in.ContactRef,
		Rating:    in.Rating,
		Title:     in.Title,
		Content:   in.Content,
		Status:    statusPtr(domain.StatusPending),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return domain.Review{}, err
	}
	return normalizePlatform(*row), nil
}

func normalizePlatform(row repository.PlatformReviewRow) domain.Review {
	rating := row.Rating
	return domain.Review{
		ID:         row.ID,
		Source:     domain.SourcePlatformReview,
		ClientRef:  row.AuthorID,
		WorkerRef:  row.TargetID,
		ContactRef: row.ContactID,
		Rating:     &rating,
		Title:      row.Title,
		Content:    row.Content,
		Status:     domain.NormalizeStatus(row.Status),
		IsPublic:   row.IsPublic,
		IsFlagged:  row.IsFlagged,
		AdminNote:  row.AdminNote,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

// -------------------- worker_client_reviews --------------------

type workerClientSource struct {
	repo *repository.WorkerClientReviewRepository
}

func (s *workerClientSource) Kind() domain.SourceKind { return domain.SourceWorkerClientReview }

func (s *workerClientSource) Capabilities() Capabilities {
	return Capabilities{Moderation: true, Replies: true, Create: true}
}

func (s *workerClientSource) Load(ctx context.Context) ([]domain.Review, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeWorkerClient(row))
	}
	return out, nil
}

func (s *workerClientSource) Get(ctx context.Context, id string) (domain.Review, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	return normalizeWorkerClient(*row), nil
}

func (s *workerClientSource) UpdateModeration(ctx context.Context, id string, upd repository.ModerationUpdate) (domain.Review, error) {
	row, err := s.repo.UpdateModeration(ctx, id, upd)
	if err != nil {
		return domain.Review{}, err
	}
	return normalizeWorkerClient(*row), nil
}

func (s *workerClientSource) Insert(ctx context.Context, in CreateReviewInput) (domain.Review, error) {
	public, flagged := false, false
	row := &repository.WorkerClientReviewRow{
		ClientProfileID:  in.ClientRef,
		WorkerProfileID:  in.WorkerRef,
		ServiceRequestID: in.ServiceRequestID,
		Score:            in.Rating,
		Comment:          in.Content,
		Status:           statusPtr(domain.StatusPending),
		IsPublic:         &public,
		IsFlagged:        &flagged,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return domain.Review{}, err
	}
	return normalizeWorkerClient(*row), nil
}

// Moderation columns were added to this table after launch; older rows
// carry NULLs.
func normalizeWorkerClient(row repository.WorkerClientReviewRow) domain.Review {
	score := row.Score
	return domain.Review{
		ID:        row.ID,
		Source:    domain.SourceWorkerClientReview,
		ClientRef: row.ClientProfileID,
		WorkerRef: row.WorkerProfileID,
		Rating:    &score,
		Content:   row.Comment,
		Status:    domain.NormalizeStatus(row.Status),
		IsPublic:  boolOrFalse(row.IsPublic),
		IsFlagged: boolOrFalse(row.IsFlagged),
		AdminNote: row.ModeratorNote,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// -------------------- worker_reviews (legacy) --------------------

type legacySource struct {
	repo *repository.LegacyWorkerReviewRepository
}

func (s *legacySource) Kind() domain.SourceKind { return domain.SourceLegacyWorkerReview }

// Capabilities is empty: the legacy table has no moderation columns and is
// frozen.
func (s *legacySource) Capabilities() Capabilities { return Capabilities{} }

func (s *legacySource) Load(ctx context.Context) ([]domain.Review, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeLegacy(row))
	}
	return out, nil
}

func (s *legacySource) Get(ctx context.Context, id string) (domain.Review, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	return normalizeLegacy(*row), nil
}

func normalizeLegacy(row repository.LegacyWorkerReviewRow) domain.Review {
	var content string
	if row.Comment != nil {
		content = *row.Comment
	}
	return domain.Review{
		ID:        row.ID,
		Source:    domain.SourceLegacyWorkerReview,
		ClientRef: row.ReviewerUserID,
		WorkerRef: row.WorkerID,
		Rating:    row.Note,
		Content:   content,
		Status:    domain.StatusPending,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.CreatedAt,
	}
}

func boolOrFalse(b *bool) bool {
	return b != nil && *b
}

func statusPtr(s domain.ReviewStatus) *string {
	v := string(s)
	return &v
}

