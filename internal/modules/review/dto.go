package review

import (
	"strings"

	"reviewdesk/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPerPage  = 20
	MaxPerPage      = 100
	MaxReplyLength  = 2000
	MaxReviewLength = 5000
	MaxTitleLength  = 200
)

// ListFilter selects a page of the merged review set. An empty or "all"
// status disables the status filter.
type ListFilter struct {
	Query   string
	Status  string
	Page    int
	PerPage int
}

func (f ListFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Page, validation.Required, validation.Min(1)),
		validation.Field(&f.PerPage, validation.Required, validation.Min(1), validation.Max(MaxPerPage)),
		validation.Field(&f.Status, validation.By(validStatusFilter)),
	)
}

func (f ListFilter) status() domain.ReviewStatus {
	return domain.ReviewStatus(strings.ToLower(strings.TrimSpace(f.Status)))
}

func validStatusFilter(value any) error {
	s, _ := value.(string)
	st := domain.ReviewStatus(strings.ToLower(strings.TrimSpace(s)))
	if st == "" || st == domain.StatusAll {
		return nil
	}
	for _, known := range domain.ReviewStatuses {
		if st == known {
			return nil
		}
	}
	return validation.NewError("validation_unknown_status", "unknown review status")
}

type ListResult struct {
	Rows       []domain.Review `json:"rows"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

type StatsResult struct {
	Total    int                         `json:"total"`
	ByStatus map[domain.ReviewStatus]int `json:"by_status"`
}

// CreateReviewInput is the write model shared by the capable sources. The
// refs are interpreted by the target source's native columns.
type CreateReviewInput struct {
	Source           domain.SourceKind
	ClientRef        string
	WorkerRef        string
	ContactRef       *string
	ServiceRequestID *string
	Rating           int
	Title            *string
	Content          string
}

func (in CreateReviewInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClientRef, validation.Required),
		validation.Field(&in.WorkerRef, validation.Required),
		validation.Field(&in.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.Length(1, MaxTitleLength)),
		validation.Field(&in.Content, validation.Required, validation.Length(1, MaxReviewLength)),
	)
}

type AddReplyInput struct {
	Source     domain.SourceKind
	ReviewID   string
	SenderRole domain.ActorRole
	SenderRef  string
	Content    string
}

func (in AddReplyInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ReviewID, validation.Required),
		validation.Field(&in.SenderRole, validation.Required, validation.In(domain.RoleClient, domain.RoleWorker)),
		validation.Field(&in.SenderRef, validation.Required),
		validation.Field(&in.Content, validation.Required, validation.RuneLength(1, MaxReplyLength)),
	)
}

// -------------------- HTTP bodies --------------------

type CreateReviewRequest struct {
	Source           string  `json:"source" validate:"required"`
	WorkerRef        string  `json:"worker_ref" validate:"required"`
	ContactRef       *string `json:"contact_ref,omitempty"`
	ServiceRequestID *string `json:"service_request_id,omitempty"`
	Rating           int     `json:"rating" validate:"required,gte=1,lte=5"`
	Title            *string `json:"title,omitempty"`
	Content          string  `json:"content" validate:"required"`
}

type AddReplyRequest struct {
	Content string `json:"content" validate:"required"`
}
