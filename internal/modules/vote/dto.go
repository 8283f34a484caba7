package vote

import (
	"reviewdesk/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxBulkIDs = 200

type ToggleRequest struct {
	VoteKind string `json:"vote_kind" validate:"required"`
}

type ToggleInput struct {
	ReplyID string
	VoterID string
	Kind    domain.VoteKind
}

func (in ToggleInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ReplyID, validation.Required),
		validation.Field(&in.VoterID, validation.Required),
		validation.Field(&in.Kind, validation.Required,
			validation.In(domain.VoteLike, domain.VoteUseful, domain.VoteNotUseful)),
	)
}

// ToggleResult is the state after a click: the reply's counts and the
// caller's position, null when the click cleared it.
type ToggleResult struct {
	ReplyID string            `json:"reply_id"`
	Counts  domain.VoteCounts `json:"counts"`
	MyVote  domain.MyVote     `json:"my_vote"`
}

type bulkIDs struct {
	IDs []string
}

func (b bulkIDs) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.IDs,
			validation.Required.Error("at least one reply id is required"),
			validation.Length(1, MaxBulkIDs),
			validation.Each(validation.Required),
		),
	)
}
