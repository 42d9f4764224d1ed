package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/mem/internal/memerr"
	"github.com/rcliao/mem/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveAssignsIDAndTimestamps(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := model.Memory{Content: "hello world"}
	require.NoError(t, st.Save(ctx, &m))

	assert.NotZero(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
	assert.False(t, m.UpdatedAt.IsZero())
	assert.Equal(t, "user", m.Source)
	assert.Equal(t, model.DefaultImportance, m.Importance)
}

func TestSaveNormalizesTags(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := model.Memory{Content: "tagged", Tags: []string{"b", "a", "b"}}
	require.NoError(t, st.Save(ctx, &m))

	got, err := st.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got.Tags)
}

func TestSaveRejectsEmptyContent(t *testing.T) {
	st := newTestStore(t)

	err := st.Save(context.Background(), &model.Memory{Content: "   "})
	require.Error(t, err)
	assert.True(t, memerr.IsInvalidInput(err))
}

func TestSaveRejectsBadImportance(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.Save(ctx, &model.Memory{Content: "x", Importance: 6})
	require.Error(t, err)
	assert.True(t, memerr.IsInvalidInput(err))

	err = st.Save(ctx, &model.Memory{Content: "x", Importance: -1})
	require.Error(t, err)
	assert.True(t, memerr.IsInvalidInput(err))
}

func TestSaveUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := model.Memory{Content: "first draft"}
	require.NoError(t, st.Save(ctx, &m))
	created := m.CreatedAt

	time.Sleep(10 * time.Millisecond)
	m.Content = "second draft"
	require.NoError(t, st.Save(ctx, &m))

	got, err := st.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "second draft", got.Content)
	assert.True(t, got.CreatedAt.Equal(created), "created_at must not change on update")
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestSaveUpdateNotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.Save(context.Background(), &model.Memory{ID: 999, Content: "ghost"})
	require.Error(t, err)
	assert.True(t, memerr.IsNotFound(err))
}

func TestGetRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	prev := int64(7)
	m := model.Memory{
		Content:    "full record",
		Tags:       []string{"api", "auth"},
		Context:    "while debugging login",
		Source:     "agent",
		SessionID:  "sess-1",
		Supersedes: &prev,
		SeeAlso:    []int64{2, 3},
		SourceURL:  "https://example.com/doc",
		SourceFile: "notes/auth.md",
		Importance: 5,
	}
	require.NoError(t, st.Save(ctx, &m))

	got, err := st.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Content, got.Content)
	assert.Equal(t, m.Tags, got.Tags)
	assert.Equal(t, m.Context, got.Context)
	assert.Equal(t, m.Source, got.Source)
	assert.Equal(t, m.SessionID, got.SessionID)
	require.NotNil(t, got.Supersedes)
	assert.Equal(t, prev, *got.Supersedes)
	assert.Equal(t, []int64{2, 3}, got.SeeAlso)
	assert.Equal(t, m.SourceURL, got.SourceURL)
	assert.Equal(t, m.SourceFile, got.SourceFile)
	assert.Equal(t, 5, got.Importance)
}

func TestGetNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, memerr.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := model.Memory{Content: "ephemeral"}
	require.NoError(t, st.Save(ctx, &m))
	require.NoError(t, st.Delete(ctx, m.ID))

	_, err := st.Get(ctx, m.ID)
	assert.True(t, memerr.IsNotFound(err))

	err = st.Delete(ctx, m.ID)
	assert.True(t, memerr.IsNotFound(err))
}

func TestAllReturnsInsertionOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, c := range []string{"one", "two", "three"} {
		m := model.Memory{Content: c}
		require.NoError(t, st.Save(ctx, &m))
	}

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].Content)
	assert.Equal(t, "three", all[2].Content)
	assert.Less(t, all[0].ID, all[1].ID)
}

func TestListSince(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	old := model.Memory{Content: "old note", CreatedAt: now.Add(-48 * time.Hour)}
	require.NoError(t, st.Save(ctx, &old))
	fresh := model.Memory{Content: "fresh note", CreatedAt: now}
	require.NoError(t, st.Save(ctx, &fresh))

	got, err := st.List(ctx, ListParams{Since: now.Add(-24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh note", got[0].Content)
}

func TestListLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		m := model.Memory{Content: "note"}
		require.NoError(t, st.Save(ctx, &m))
	}

	got, err := st.List(ctx, ListParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
