// Package model defines the core memory data types.
package model

import "time"

// Memory represents a stored memory entry. ID is assigned by the store on
// first save and is the sole identity. Supersedes and SeeAlso are soft
// references to other memory IDs; they are never validated and may dangle.
type Memory struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	Context    string    `json:"context,omitempty"`
	Source     string    `json:"source"`
	SessionID  string    `json:"session_id,omitempty"`
	Supersedes *int64    `json:"supersedes,omitempty"`
	SeeAlso    []int64   `json:"see_also,omitempty"`
	SourceURL  string    `json:"source_url,omitempty"`
	SourceFile string    `json:"source_file,omitempty"`
	Importance int       `json:"importance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DefaultImportance is the importance assigned when none is given.
const DefaultImportance = 3

// DefaultSource is the provenance label assigned when none is given.
const DefaultSource = "user"

// NormalizeTags returns tags with empty values and duplicates removed,
// first occurrence wins.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// NormalizeRefs returns ids with duplicates removed, first occurrence wins.
func NormalizeRefs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// HasTag reports whether the memory carries the given tag.
func (m *Memory) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
