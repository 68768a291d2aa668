package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/store"
)

func TestAppendAndLoad(t *testing.T) {
	tr := store.NewTranscript(t.TempDir())

	require.NoError(t, tr.Append(store.DirectionSent, "hello"))
	require.NoError(t, tr.Append(store.DirectionReceived, "hi back"))

	entries, err := tr.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, store.DirectionSent, entries[0].Direction)
	assert.Equal(t, "hello", entries[0].Text)
	assert.False(t, entries[0].At.IsZero())

	assert.Equal(t, store.DirectionReceived, entries[1].Direction)
	assert.Equal(t, "hi back", entries[1].Text)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	tr := store.NewTranscript(t.TempDir())
	entries, err := tr.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
