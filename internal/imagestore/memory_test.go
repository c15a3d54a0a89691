package imagestore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, s.Save(ctx, id, strings.NewReader("bytes")))
	assert.Equal(t, 1, s.Len())

	rc, err := s.Load(ctx, id)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))

	require.NoError(t, s.Delete(ctx, id))
	assert.Zero(t, s.Len())
	_, err = s.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
}
