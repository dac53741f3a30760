package utils

import (
	stderrors "errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk/internal/shared/errors"
)

type replyForm struct {
	Body     string `json:"body" validate:"required,max=5"`
	Priority string `json:"priority" validate:"omitempty,oneof=low high"`
}

func TestBindError_ValidationErrors(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(tagName)

	err := v.Struct(replyForm{Priority: "urgent"})
	require.Error(t, err)

	appErr := errors.GetAppError(BindError(err))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.Contains(t, appErr.Details, "body is required")
	assert.Contains(t, appErr.Details, "priority must be one of [low high]")
}

func TestBindError_MaxLength(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(tagName)

	err := v.Struct(replyForm{Body: "far too long"})

	appErr := errors.GetAppError(BindError(err))
	require.NotNil(t, appErr)
	assert.Equal(t, "body must be at most 5 characters long", appErr.Details)
}

func TestBindError_DecodeError(t *testing.T) {
	appErr := errors.GetAppError(BindError(stderrors.New("unexpected EOF")))

	require.NotNil(t, appErr)
	assert.Equal(t, "invalid request body", appErr.Message)
	assert.Equal(t, "unexpected EOF", appErr.Details)
}
