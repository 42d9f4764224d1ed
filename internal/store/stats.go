package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string         `json:"db_path"`
	DBSizeBytes int64          `json:"db_size_bytes"`
	MemoryCount int            `json:"memory_count"`
	TagCount    int            `json:"tag_count"`
	Tags        map[string]int `json:"tags"`
}

// Stats returns database statistics including per-tag usage counts.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path, Tags: map[string]int{}}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	memories, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	st.MemoryCount = len(memories)

	for _, m := range memories {
		for _, t := range m.Tags {
			st.Tags[t]++
		}
	}
	st.TagCount = len(st.Tags)

	return st, nil
}
