package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	VoteKind string `json:"vote_kind" validate:"required,oneof=like useful not_useful"`
	Content  string `json:"content,omitempty" validate:"max=5"`
}

func TestValidateUsesJSONNames(t *testing.T) {
	assert.Nil(t, Validate(sample{VoteKind: "like"}))

	errs := Validate(sample{VoteKind: "love", Content: "too long"})
	assert.Equal(t, map[string]string{"vote_kind": "oneof", "content": "max"}, errs)
}
