// Package dedupe finds and merges near-duplicate memories using ranked
// full-text search as a similarity oracle.
package dedupe

import (
	"context"
	"strings"

	"github.com/rcliao/mem/internal/model"
	"github.com/rcliao/mem/internal/store"
)

const (
	// SimilarLimit and SimilarThreshold are the defaults for the
	// "similar existing memories" hint shown after remember.
	SimilarLimit     = 3
	SimilarThreshold = -5.0

	// probeTokens caps how many leading content tokens feed the probe
	// query, bounding query cost on long documents.
	probeTokens = 10
)

// Searcher is the slice of the store the oracle needs.
type Searcher interface {
	SearchRanked(ctx context.Context, query string, limit int) ([]store.ScoredMemory, error)
}

// Match is a memory judged similar to a probe, with its BM25 score.
type Match struct {
	Memory model.Memory
	Score  float64
}

// Oracle turns the store's ranked search into a similarity judgement.
type Oracle struct {
	search Searcher
}

// NewOracle returns an Oracle backed by the given searcher.
func NewOracle(search Searcher) *Oracle {
	return &Oracle{search: search}
}

// Similar returns up to limit memories whose BM25 score against a probe
// query is at or below threshold (lower score = more relevant). The query
// is the probe's first 10 whitespace tokens joined with OR, so any shared
// leading token contributes to a match.
//
// Similar never fails: an empty probe or an underlying search error
// degrades to no matches. The probe itself is always excluded.
func (o *Oracle) Similar(ctx context.Context, probe *model.Memory, limit int, threshold float64) []Match {
	words := strings.Fields(probe.Content)
	if len(words) == 0 {
		return nil
	}
	if len(words) > probeTokens {
		words = words[:probeTokens]
	}
	query := strings.Join(words, " OR ")

	// +1 reserves room for the probe matching itself.
	results, err := o.search.SearchRanked(ctx, query, limit+1)
	if err != nil {
		return nil
	}

	var matches []Match
	for _, r := range results {
		if r.ID == probe.ID {
			continue
		}
		if r.Score <= threshold {
			matches = append(matches, Match{Memory: r.Memory, Score: r.Score})
		}
		if len(matches) >= limit {
			break
		}
	}
	return matches
}
