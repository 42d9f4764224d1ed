package dedupe

import (
	"context"
	"log/slog"

	"github.com/rcliao/mem/internal/model"
)

// DefaultThreshold is the BM25 score cutoff for considering two memories
// duplicates (lower = more similar).
const DefaultThreshold = -3.0

// Store is what the dedupe runner needs from the storage layer.
type Store interface {
	Searcher
	Mutator
	All(ctx context.Context) ([]model.Memory, error)
}

// Options controls a dedupe run. Exactly one of the three decision modes
// applies per group: DryRun never merges, Auto always merges, otherwise
// Confirm is asked (a nil Confirm declines).
type Options struct {
	DryRun    bool
	Auto      bool
	Threshold float64

	// OnGroup, when set, is invoked for every group in discovery order
	// before any merge decision, with a 1-based group number and the
	// total group count.
	OnGroup func(n, total int, members []model.Memory)

	// Confirm decides interactive merges. Called after OnGroup.
	Confirm func() bool

	// OnMerge, when set, is invoked after each successful group merge.
	OnMerge func(n int, res MergeResult)
}

// GroupResult is the per-group detail of a dedupe run. Members are in
// discovery order, not survivor order.
type GroupResult struct {
	Members    []model.Memory
	Merged     bool
	SurvivorID int64
	DeletedIDs []int64
}

// Report aggregates a dedupe run.
type Report struct {
	Total  int // memories scanned
	Groups []GroupResult
	Merged int // memories deleted across all merges
}

// Runner drives duplicate detection and merging over the whole corpus.
type Runner struct {
	store  Store
	oracle *Oracle
	logger *slog.Logger
}

// NewRunner returns a Runner over the given store.
func NewRunner(st Store) *Runner {
	return &Runner{store: st, oracle: NewOracle(st), logger: slog.Default()}
}

// Run loads all memories, builds duplicate groups, and applies the merge
// decision per group. Merges are applied eagerly and independently: a
// store failure aborts the run but groups already merged stay merged.
// Fewer than 2 memories short-circuits to an empty report.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	all, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(all)}
	if len(all) < 2 {
		return report, nil
	}

	groups := r.oracle.BuildGroups(ctx, all, opts.Threshold)
	r.logger.Debug("dedupe scan complete",
		"memories", len(all), "groups", len(groups), "threshold", opts.Threshold)

	for i, group := range groups {
		if opts.OnGroup != nil {
			opts.OnGroup(i+1, len(groups), group)
		}

		result := GroupResult{Members: group}

		merge := false
		switch {
		case opts.DryRun:
		case opts.Auto:
			merge = true
		default:
			merge = opts.Confirm != nil && opts.Confirm()
		}

		if merge {
			res, err := Merge(ctx, r.store, group)
			if err != nil {
				if res != nil {
					result.SurvivorID = res.SurvivorID
					result.DeletedIDs = res.DeletedIDs
					report.Merged += len(res.DeletedIDs)
				}
				report.Groups = append(report.Groups, result)
				return report, err
			}
			result.Merged = true
			result.SurvivorID = res.SurvivorID
			result.DeletedIDs = res.DeletedIDs
			report.Merged += len(res.DeletedIDs)
			if opts.OnMerge != nil {
				opts.OnMerge(i+1, *res)
			}
		}

		report.Groups = append(report.Groups, result)
	}

	return report, nil
}
