package dedupe

import (
	"context"
	"sort"

	"github.com/rcliao/mem/internal/model"
)

// Mutator is the slice of the store the merge policy needs.
type Mutator interface {
	Save(ctx context.Context, m *model.Memory) error
	Delete(ctx context.Context, id int64) error
}

// MergeResult reports the outcome of merging one group.
type MergeResult struct {
	SurvivorID   int64
	SurvivorTags []string
	DeletedIDs   []int64
}

// Merge collapses a duplicate group into its newest member. The survivor
// keeps its id and created_at, takes the union of every member's tags
// (sorted, no duplicates), and is saved; all other members are deleted
// permanently. Creation-time ties resolve by original group order.
func Merge(ctx context.Context, st Mutator, group []model.Memory) (*MergeResult, error) {
	sorted := append([]model.Memory(nil), group...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	survivor := sorted[0]

	tagSet := make(map[string]bool)
	for _, m := range sorted {
		for _, t := range m.Tags {
			tagSet[t] = true
		}
	}
	union := make([]string, 0, len(tagSet))
	for t := range tagSet {
		union = append(union, t)
	}
	sort.Strings(union)

	survivor.Tags = union
	if err := st.Save(ctx, &survivor); err != nil {
		return nil, err
	}

	result := &MergeResult{SurvivorID: survivor.ID, SurvivorTags: union}
	for _, m := range sorted[1:] {
		if err := st.Delete(ctx, m.ID); err != nil {
			return result, err
		}
		result.DeletedIDs = append(result.DeletedIDs, m.ID)
	}
	return result, nil
}
