package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func TestKindsMatchThroughWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("list reviews: %w", SourceUnavailable("worker_reviews", cause))

	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus())
	assert.Equal(t, CodeSourceUnavailable, appErr.Code)
}

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{Capability("read only"), http.StatusConflict},
		{NotFound("review %s", "x"), http.StatusNotFound},
		{Validation("bad page", nil), http.StatusBadRequest},
		{Conflict("duplicate"), http.StatusConflict},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.HTTPStatus(), tc.err.Error())
	}
}

func TestAsRejectsPlainErrors(t *testing.T) {
	_, ok := As(errors.New("boom"))
	assert.False(t, ok)
}

func TestFromValidationKeepsFieldErrors(t *testing.T) {
	assert.Nil(t, FromValidation(nil))

	err := FromValidation(validation.Errors{"page": errors.New("must be no less than 1")})
	assert.ErrorIs(t, err, ErrValidation)

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Contains(t, appErr.Details, "page")
}
