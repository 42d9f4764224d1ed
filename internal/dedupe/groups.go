package dedupe

import (
	"context"

	"github.com/rcliao/mem/internal/model"
)

// groupProbeLimit is how many neighbors each seed probes for. Higher than
// the remember hint's limit because a duplicate cluster can be large.
const groupProbeLimit = 10

// BuildGroups partitions memories into duplicate groups of size >= 2.
//
// Clustering is single-hop: a group is a seed plus its direct neighbors;
// a neighbor's own neighbors are never explored. Seeds with no qualifying
// neighbors are not marked visited, so a memory skipped as a seed can
// still be pulled into a later seed's group. BuildGroups is a one-shot
// full-corpus pass; it is not meant to be reused incrementally.
func (o *Oracle) BuildGroups(ctx context.Context, memories []model.Memory, threshold float64) [][]model.Memory {
	visited := make(map[int64]bool)
	var groups [][]model.Memory

	for i := range memories {
		seed := memories[i]
		if visited[seed.ID] {
			continue
		}

		similar := o.Similar(ctx, &seed, groupProbeLimit, threshold)
		if len(similar) == 0 {
			continue
		}

		group := []model.Memory{seed}
		for _, match := range similar {
			if visited[match.Memory.ID] {
				continue
			}
			group = append(group, match.Memory)
			visited[match.Memory.ID] = true
		}

		if len(group) > 1 {
			visited[seed.ID] = true
			groups = append(groups, group)
		}
	}

	return groups
}
