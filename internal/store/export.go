package store

import (
	"context"

	"github.com/rcliao/mem/internal/model"
)

// ExportRecord is the portable JSON shape for backup and restore.
// IDs are intentionally absent: import assigns fresh ones.
type ExportRecord struct {
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Context    string   `json:"context,omitempty"`
	Source     string   `json:"source"`
	SessionID  string   `json:"session_id,omitempty"`
	Supersedes *int64   `json:"supersedes,omitempty"`
	SeeAlso    []int64  `json:"see_also,omitempty"`
	SourceURL  string   `json:"source_url,omitempty"`
	SourceFile string   `json:"source_file,omitempty"`
	Importance int      `json:"importance"`
	CreatedAt  string   `json:"created_at,omitempty"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
}

// ExportAll returns every memory as a portable export record.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]ExportRecord, error) {
	memories, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]ExportRecord, 0, len(memories))
	for _, m := range memories {
		records = append(records, ExportRecord{
			Content:    m.Content,
			Tags:       m.Tags,
			Context:    m.Context,
			Source:     m.Source,
			SessionID:  m.SessionID,
			Supersedes: m.Supersedes,
			SeeAlso:    m.SeeAlso,
			SourceURL:  m.SourceURL,
			SourceFile: m.SourceFile,
			Importance: m.Importance,
			CreatedAt:  formatTime(m.CreatedAt),
			UpdatedAt:  formatTime(m.UpdatedAt),
		})
	}
	return records, nil
}

// Import stores records from an export, assigning fresh ids and timestamps.
// Returns the number imported; stops at the first failing record.
func (s *SQLiteStore) Import(ctx context.Context, records []ExportRecord) (int, error) {
	imported := 0
	for _, r := range records {
		source := r.Source
		if source == "" {
			source = "imported"
		}
		importance := r.Importance
		if importance == 0 {
			importance = model.DefaultImportance
		}
		m := model.Memory{
			Content:    r.Content,
			Tags:       r.Tags,
			Context:    r.Context,
			Source:     source,
			SessionID:  r.SessionID,
			Supersedes: r.Supersedes,
			SeeAlso:    r.SeeAlso,
			SourceURL:  r.SourceURL,
			SourceFile: r.SourceFile,
			Importance: importance,
		}
		if err := s.Save(ctx, &m); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
