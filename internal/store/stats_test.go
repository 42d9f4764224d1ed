package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/mem/internal/model"
)

func TestStats(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, m := range []model.Memory{
		{Content: "a", Tags: []string{"api", "auth"}},
		{Content: "b", Tags: []string{"api"}},
		{Content: "c"},
	} {
		mm := m
		require.NoError(t, st.Save(ctx, &mm))
	}

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Path(), stats.DBPath)
	assert.Equal(t, 3, stats.MemoryCount)
	assert.Equal(t, 2, stats.TagCount)
	assert.Equal(t, map[string]int{"api": 2, "auth": 1}, stats.Tags)
	assert.Greater(t, stats.DBSizeBytes, int64(0))
}

func TestStatsEmpty(t *testing.T) {
	st := newTestStore(t)

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MemoryCount)
	assert.Equal(t, 0, stats.TagCount)
	assert.Empty(t, stats.Tags)
}
