package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppError_MessageIncludesCause(t *testing.T) {
	err := NewExtractionError("failed to extract archive", errors.New("zip: not a valid zip file"))

	assert.Equal(t, "failed to extract archive: zip: not a valid zip file", err.Error())
	assert.Equal(t, KindExtraction, err.Kind)
}

func TestAppError_WithoutCause(t *testing.T) {
	err := NewInputError("question is required", nil)

	assert.Equal(t, "question is required", err.Error())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("resolve: %w", NewUpstreamError("completion failed", nil))

	assert.Equal(t, KindUpstream, KindOf(wrapped))
	assert.Equal(t, KindParse, KindOf(NewParseError("bad csv", nil)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()

	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestNewLogger_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		assert.NotNil(t, NewLogger(level).Logger, level)
	}
}
