package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrInvalidInput,
		ErrNoSections,
		ErrDuplicateSlug,
		ErrCorruptIndex,
		ErrDimensionMismatch,
		ErrEmptyQuery,
		ErrEmbeddingService,
		ErrGenerativeService,
	}

	for i, a := range errs {
		for j, b := range errs {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b, "%v should not match %v", a, b)
		}
	}
}

func TestErrors_WrappingPreservesIdentity(t *testing.T) {
	wrapped := fmt.Errorf("load snapshot: %w", ErrCorruptIndex)
	assert.True(t, errors.Is(wrapped, ErrCorruptIndex))

	double := fmt.Errorf("query: %w", fmt.Errorf("rank: %w", ErrDimensionMismatch))
	assert.True(t, errors.Is(double, ErrDimensionMismatch))
}
