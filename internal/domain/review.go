package domain

import (
	"strings"
	"time"
)

// SourceKind names the physical table a review lives in.
type SourceKind string

const (
	SourcePlatformReview     SourceKind = "platform_review"
	SourceWorkerClientReview SourceKind = "worker_client_review"
	SourceLegacyWorkerReview SourceKind = "legacy_worker_review"
)

// SourceKinds lists every review source in merge order.
var SourceKinds = []SourceKind{
	SourcePlatformReview,
	SourceWorkerClientReview,
	SourceLegacyWorkerReview,
}

func ParseSourceKind(s string) (SourceKind, bool) {
	k := SourceKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SourceKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

type ReviewStatus string

const (
	StatusPending   ReviewStatus = "pending"
	StatusPublished ReviewStatus = "published"
	StatusHidden    ReviewStatus = "hidden"
	StatusRejected  ReviewStatus = "rejected"
	StatusFlagged   ReviewStatus = "flagged"

	// StatusAll is only meaningful as a list filter.
	StatusAll ReviewStatus = "all"
)

var ReviewStatuses = []ReviewStatus{
	StatusPending,
	StatusPublished,
	StatusHidden,
	StatusRejected,
	StatusFlagged,
}

// NormalizeStatus maps a stored (possibly missing or unknown) status to one of
// ReviewStatuses. Rows without a status are pending.
func NormalizeStatus(raw *string) ReviewStatus {
	if raw == nil {
		return StatusPending
	}
	s := ReviewStatus(strings.ToLower(strings.TrimSpace(*raw)))
	for _, known := range ReviewStatuses {
		if s == known {
			return s
		}
	}
	return StatusPending
}

type ModerationAction string

const (
	ActionPublish ModerationAction = "publish"
	ActionHide    ModerationAction = "hide"
	ActionReject  ModerationAction = "reject"
)

// Outcome returns the status and visibility an action writes.
func (a ModerationAction) Outcome() (ReviewStatus, bool, bool) {
	switch a {
	case ActionPublish:
		return StatusPublished, true, true
	case ActionHide:
		return StatusHidden, false, true
	case ActionReject:
		return StatusRejected, false, true
	}
	return "", false, false
}

// Review is the common projection of a row from any review source.
type Review struct {
	ID            string       `json:"id"`
	Source        SourceKind   `json:"source"`
	ClientRef     string       `json:"client_ref"`
	WorkerRef     string       `json:"worker_ref"`
	ContactRef    *string      `json:"contact_ref,omitempty"`
	Rating        *int         `json:"rating,omitempty"`
	Title         *string      `json:"title,omitempty"`
	Content       string       `json:"content"`
	Status        ReviewStatus `json:"status"`
	IsPublic      bool         `json:"is_public"`
	IsFlagged     bool         `json:"is_flagged"`
	AdminNote     *string      `json:"admin_note,omitempty"`
	ClientDisplay string       `json:"client_display,omitempty"`
	WorkerDisplay string       `json:"worker_display,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsLive reports whether the review is visible to the public.
func (r Review) IsLive() bool {
	return r.Status == StatusPublished && r.IsPublic
}
