package summary

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewCache(context.Background(), mr.Addr(), "", 0, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheMissThenHit(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "content")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "content", "the summary"))

	got, ok, err := c.Get(ctx, "content")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "the summary", got)

	_, ok, err = c.Get(ctx, "other content")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheKeyUsesTruncatedContent(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	base := strings.Repeat("a", MaxInputChars)
	require.NoError(t, c.Set(ctx, base+"tail one", "s"))

	// same first MaxInputChars characters, so same backend input
	got, ok, err := c.Get(ctx, base+"different tail")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s", got)
}
