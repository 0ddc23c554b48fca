package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeNoData, "no scrub record")
		assert.True(t, HasCode(err, CodeNoData))
		assert.False(t, HasCode(err, CodeStaleData))
	})

	t.Run("matches wrapped code", func(t *testing.T) {
		cause := New(CodeNotFound, "row missing")
		err := Wrap(cause, CodeNoData, "no scrub record")
		assert.True(t, HasCode(err, CodeNoData))
		assert.True(t, HasCode(err, CodeNotFound))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestMetadata(t *testing.T) {
	err := New(CodeIncompleteInputs, "mandatory bureau fields missing")
	err = Add(err, "missing_fields", []string{"income", "process_date"})

	meta := Load(err)
	require.NotNil(t, meta)
	assert.Equal(t, []string{"income", "process_date"}, meta["missing_fields"])

	wrapped := fmt.Errorf("evaluate: %w", err)
	assert.Equal(t, meta, Load(wrapped))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeStaleData, CodeOf(New(CodeStaleData, "old pull")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("uncoded")))
}
