package dedupe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/mem/internal/model"
	"github.com/rcliao/mem/internal/store"
)

type fakeSearcher struct {
	results   []store.ScoredMemory
	err       error
	lastQuery string
	lastLimit int
	calls     int
}

func (f *fakeSearcher) SearchRanked(ctx context.Context, query string, limit int) ([]store.ScoredMemory, error) {
	f.calls++
	f.lastQuery = query
	f.lastLimit = limit
	return f.results, f.err
}

func scored(id int64, content string, score float64) store.ScoredMemory {
	return store.ScoredMemory{Memory: model.Memory{ID: id, Content: content}, Score: score}
}

func TestSimilarEmptyProbe(t *testing.T) {
	f := &fakeSearcher{}
	o := NewOracle(f)

	got := o.Similar(context.Background(), &model.Memory{Content: "   "}, 3, -1.0)
	assert.Nil(t, got)
	assert.Zero(t, f.calls, "no query for an empty probe")
}

func TestSimilarQueryShape(t *testing.T) {
	f := &fakeSearcher{}
	o := NewOracle(f)

	probe := &model.Memory{ID: 1, Content: "one two three four five six seven eight nine ten eleven twelve"}
	o.Similar(context.Background(), probe, 3, -1.0)

	assert.Equal(t, "one OR two OR three OR four OR five OR six OR seven OR eight OR nine OR ten", f.lastQuery)
	assert.Equal(t, 4, f.lastLimit, "fetches limit+1 to absorb the self match")
}

func TestSimilarExcludesProbe(t *testing.T) {
	f := &fakeSearcher{results: []store.ScoredMemory{
		scored(1, "probe itself", -9),
		scored(2, "neighbor", -8),
	}}
	o := NewOracle(f)

	got := o.Similar(context.Background(), &model.Memory{ID: 1, Content: "probe itself"}, 3, -1.0)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Memory.ID)
	assert.Equal(t, -8.0, got[0].Score)
}

func TestSimilarThresholdFilter(t *testing.T) {
	f := &fakeSearcher{results: []store.ScoredMemory{
		scored(2, "strong", -6),
		scored(3, "weak", -2),
	}}
	o := NewOracle(f)

	got := o.Similar(context.Background(), &model.Memory{ID: 1, Content: "probe"}, 5, -5.0)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Memory.ID)
}

func TestSimilarThresholdMonotonic(t *testing.T) {
	f := &fakeSearcher{results: []store.ScoredMemory{
		scored(2, "a", -6),
		scored(3, "b", -4),
		scored(4, "c", -2),
	}}
	o := NewOracle(f)
	probe := &model.Memory{ID: 1, Content: "probe"}

	strict := o.Similar(context.Background(), probe, 5, -5.0)
	loose := o.Similar(context.Background(), probe, 5, -3.0)
	assert.Len(t, strict, 1)
	assert.Len(t, loose, 2)
	// Everything passing the strict cutoff passes the looser one.
	assert.Equal(t, strict[0].Memory.ID, loose[0].Memory.ID)
}

func TestSimilarLimitCap(t *testing.T) {
	f := &fakeSearcher{results: []store.ScoredMemory{
		scored(2, "a", -9),
		scored(3, "b", -8),
		scored(4, "c", -7),
	}}
	o := NewOracle(f)

	got := o.Similar(context.Background(), &model.Memory{ID: 1, Content: "probe"}, 2, -1.0)
	assert.Len(t, got, 2)
}

func TestSimilarSwallowsSearchErrors(t *testing.T) {
	f := &fakeSearcher{err: errors.New("fts syntax error")}
	o := NewOracle(f)

	got := o.Similar(context.Background(), &model.Memory{ID: 1, Content: "probe"}, 3, -1.0)
	assert.Nil(t, got)
}
