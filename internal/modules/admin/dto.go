package admin

import (
	"reviewdesk/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxNoteLength = 1000

type ReviewListQuery struct {
	Query   string `form:"q"`
	Status  string `form:"status"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=20"`
}

type ModerateRequest struct {
	Action string  `json:"action" validate:"required,oneof=publish hide reject"`
	Note   *string `json:"note,omitempty"`
}

// ModerateInput carries one moderation decision. A nil Note keeps the stored
// note; a non-nil one replaces it and an empty string clears it.
type ModerateInput struct {
	Source   domain.SourceKind
	ReviewID string
	Action   domain.ModerationAction
	Note     *string
	AdminID  string
}

func (in ModerateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ReviewID, validation.Required),
		validation.Field(&in.Action, validation.Required,
			validation.In(domain.ActionPublish, domain.ActionHide, domain.ActionReject)),
		validation.Field(&in.Note, validation.RuneLength(0, MaxNoteLength)),
	)
}

type ThreadResponse struct {
	Review *domain.Review      `json:"review"`
	Items  []domain.ThreadItem `json:"items"`
}
