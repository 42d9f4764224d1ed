package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/mem/internal/model"
)

func seedMemory(t *testing.T, st *SQLiteStore, content, ctxField string) model.Memory {
	t.Helper()
	m := model.Memory{Content: content, Context: ctxField}
	require.NoError(t, st.Save(context.Background(), &m))
	return m
}

func TestSearchRankedScoresAndOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedMemory(t, st, "deploy deploy deploy checklist", "")
	seedMemory(t, st, "deploy notes from last sprint meeting", "")
	seedMemory(t, st, "grocery list for the weekend", "")

	results, err := st.SearchRanked(ctx, "deploy", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Less(t, r.Score, 0.0, "bm25 match scores are negative")
	}
	// Higher term frequency ranks first (more negative).
	assert.Equal(t, "deploy deploy deploy checklist", results[0].Content)
	assert.LessOrEqual(t, results[0].Score, results[1].Score)
}

func TestSearchMatchesContextColumn(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := seedMemory(t, st, "rollout plan", "kubernetes cluster upgrade")
	seedMemory(t, st, "unrelated shopping reminder", "")

	got, err := st.Search(ctx, "kubernetes", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].ID)
}

func TestSearchNoMatch(t *testing.T) {
	st := newTestStore(t)

	seedMemory(t, st, "alpha bravo", "")

	got, err := st.Search(context.Background(), "zulu", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedMemory(t, st, "repeated topic entry", "")
	}

	got, err := st.Search(ctx, "topic", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchIndexFollowsUpdates(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := seedMemory(t, st, "original wording", "")

	m.Content = "rewritten phrasing"
	require.NoError(t, st.Save(ctx, &m))

	got, err := st.Search(ctx, "wording", 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = st.Search(ctx, "rewritten", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].ID)
}

func TestSearchIndexFollowsDeletes(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := seedMemory(t, st, "soon to vanish", "")
	require.NoError(t, st.Delete(ctx, m.ID))

	got, err := st.Search(ctx, "vanish", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRebuildIndex(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedMemory(t, st, "first entry", "")
	seedMemory(t, st, "second entry", "")

	count, err := st.RebuildIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := st.Search(ctx, "entry", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
