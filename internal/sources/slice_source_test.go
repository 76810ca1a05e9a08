package sources

import (
	"testing"

	"weblog-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceSource_DrainsInOrder(t *testing.T) {
	t.Parallel()

	first := models.NewLogEntry(2015, 6, 1, 9, 0)
	second := models.NewLogEntry(2015, 6, 2, 14, 30)
	source := NewSliceSource([]*models.LogEntry{first, second})

	require.True(t, source.HasNext())
	entry, err := source.Next()
	require.NoError(t, err)
	assert.Same(t, first, entry)

	require.True(t, source.HasNext())
	entry, err = source.Next()
	require.NoError(t, err)
	assert.Same(t, second, entry)

	assert.False(t, source.HasNext())
	entry, err = source.Next()
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrSourceExhausted)
}

func TestSliceSource_Reset(t *testing.T) {
	t.Parallel()

	source := NewSliceSource([]*models.LogEntry{models.NewLogEntry(2015, 6, 1, 9, 0)})
	_, err := source.Next()
	require.NoError(t, err)
	require.False(t, source.HasNext())

	require.NoError(t, source.Reset())
	assert.True(t, source.HasNext())
}

func TestSliceSource_Empty(t *testing.T) {
	t.Parallel()

	source := NewSliceSource(nil)
	assert.False(t, source.HasNext())
	_, err := source.Next()
	assert.ErrorIs(t, err, ErrSourceExhausted)
}
