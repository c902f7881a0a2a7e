package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewParsingError("too few columns", nil),
			expected: "[PARSING] too few columns",
		},
		{
			name:     "with cause",
			err:      NewParsingError("failed to open workbook", errors.New("zip: not a valid zip file")),
			expected: "[PARSING] failed to open workbook: zip: not a valid zip file",
		},
		{
			name:     "transform",
			err:      NewTransformError(`missing column "Course"`, nil),
			expected: `[TRANSFORM] missing column "Course"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("failed to write CSV", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("sheet missing", nil).
		WithContext("sheet", "Admissions").
		WithContext("available", []string{"Sheet1"})

	assert.Equal(t, "Admissions", err.Context["sheet"])
	assert.Equal(t, []string{"Sheet1"}, err.Context["available"])

	bare := &AppError{Type: ErrTypeConfig, Message: "x"}
	bare.WithContext("k", 1)
	assert.Equal(t, 1, bare.Context["k"])
}

func TestTypePredicates(t *testing.T) {
	parse := fmt.Errorf("load book.xlsx: %w", NewParsingError("too few columns", nil))
	transform := fmt.Errorf("transform book.xlsx: %w", NewTransformError("row arity", nil))
	validation := NewAppValidationError("bad name")
	plain := errors.New("plain")

	assert.True(t, IsParseError(parse))
	assert.False(t, IsParseError(transform))

	assert.True(t, IsTransformError(transform))
	assert.False(t, IsTransformError(parse))

	assert.True(t, IsValidationError(validation))
	assert.False(t, IsValidationError(plain))

	assert.Equal(t, ErrorType(""), TypeOf(plain))
	assert.Equal(t, ErrTypeConfig, TypeOf(NewConfigError("bad", nil)))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Equal(t, "too few columns: expected 12, found 11",
		UserMessage(fmt.Errorf("load x: %w", NewParsingError("too few columns: expected 12, found 11", nil))))
	assert.Equal(t, "failed to open workbook: EOF",
		UserMessage(NewParsingError("failed to open workbook", errors.New("EOF"))))
}
