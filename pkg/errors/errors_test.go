package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "path_occupied",
			code:    errors.ErrPathOccupied,
			message: "active path already has a real directory",
			wantStr: "[PATH_OCCUPIED] active path already has a real directory",
		},
		{
			name:    "publish_conflict",
			code:    errors.ErrPublishConflict,
			message: "remote advanced concurrently",
			wantStr: "[PUBLISH_CONFLICT] remote advanced concurrently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.wantStr, err.Error())
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := errors.Wrap(inner, errors.ErrLinkDenied, "cannot create junction")

	assert.Equal(t, "[LINK_DENIED] cannot create junction: permission denied", err.Error())
	assert.ErrorIs(t, err, inner)

	// Wrapping nil stays nil
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "ignored"))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrPathOccupied, "entry at %s", "/tmp/skills/foo")

	assert.True(t, errors.IsErrorCode(err, errors.ErrPathOccupied))
	assert.False(t, errors.IsErrorCode(err, errors.ErrLinkDenied))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrPathOccupied))

	// Codes survive another layer of fmt wrapping
	wrapped := fmt.Errorf("stage 2: %w", err)
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrPathOccupied))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrVCSUnavailable, errors.GetErrorCode(errors.New(errors.ErrVCSUnavailable, "no remote")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestErrorsIsByCode(t *testing.T) {
	a := errors.New(errors.ErrPublishConflict, "push rejected")
	b := errors.New(errors.ErrPublishConflict, "different message, same code")

	assert.ErrorIs(t, a, b)
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrPathOccupied, "occupied").
		WithDetail("activePath", "/home/u/skills/foo").
		WithDetail("item", "foo")

	assert.Equal(t, "/home/u/skills/foo", err.Details["activePath"])
	assert.Equal(t, "foo", err.Details["item"])
}
