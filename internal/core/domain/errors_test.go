package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrUnsupportedPlatform", ErrUnsupportedPlatform},
		{"ErrArchiveRead", ErrArchiveRead},
		{"ErrCorruptArchive", ErrCorruptArchive},
		{"ErrMissingPath", ErrMissingPath},
		{"ErrMalformedTimestamp", ErrMalformedTimestamp},
		{"ErrFlowNotStarted", ErrFlowNotStarted},
		{"ErrFlowTerminated", ErrFlowTerminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrArchiveRead_Wrapped(t *testing.T) {
	err := fmt.Errorf("opening export.zip: %w", ErrArchiveRead)

	assert.True(t, errors.Is(err, ErrArchiveRead))
	assert.False(t, errors.Is(err, ErrMissingPath))
}

func TestErrors_Joined(t *testing.T) {
	err := errors.Join(
		fmt.Errorf("summary: %w", ErrMissingPath),
		fmt.Errorf("posts: %w", ErrMalformedTimestamp),
	)

	assert.True(t, errors.Is(err, ErrMissingPath))
	assert.True(t, errors.Is(err, ErrMalformedTimestamp))
	assert.False(t, errors.Is(err, ErrArchiveRead))
}

func TestErrCorruptArchive_WrapsBothClasses(t *testing.T) {
	err := fmt.Errorf("%w: %w: zip: not a valid zip file", ErrArchiveRead, ErrCorruptArchive)

	assert.ErrorIs(t, err, ErrArchiveRead)
	assert.ErrorIs(t, err, ErrCorruptArchive)
}
