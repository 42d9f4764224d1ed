package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rcliao/mem/internal/memerr"
	"github.com/rcliao/mem/internal/model"
)

// SearchRanked runs an FTS5 query over content and context and returns
// matches with their bm25 scores, most relevant (most negative) first.
func (s *SQLiteStore) SearchRanked(ctx context.Context, query string, limit int) ([]ScoredMemory, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.content, m.tags, m.context, m.source, m.session_id, m.supersedes,
		       m.see_also, m.source_url, m.source_file, m.importance, m.created_at, m.updated_at,
		       bm25(memories_fts) AS score
		FROM memories_fts
		JOIN memories m ON m.id = memories_fts.rowid
		WHERE memories_fts MATCH ?
		ORDER BY bm25(memories_fts)
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, memerr.Wrapf(err, memerr.CodeStoreDatabase, "search %q", query)
	}
	defer rows.Close()

	var results []ScoredMemory
	for rows.Next() {
		r, err := scanScoredMemory(rows)
		if err != nil {
			return nil, memerr.Wrapf(err, memerr.CodeStoreDatabase, "scan search result")
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Search is SearchRanked without the scores.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]model.Memory, error) {
	ranked, err := s.SearchRanked(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	memories := make([]model.Memory, len(ranked))
	for i, r := range ranked {
		memories[i] = r.Memory
	}
	return memories, nil
}

// RebuildIndex repopulates the FTS table from the memories table and
// returns the number of indexed memories.
func (s *SQLiteStore) RebuildIndex(ctx context.Context) (int, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO memories_fts(memories_fts) VALUES ('rebuild')`); err != nil {
		return 0, memerr.Wrapf(err, memerr.CodeStoreDatabase, "rebuild fts index")
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&count); err != nil {
		return 0, memerr.Wrapf(err, memerr.CodeStoreDatabase, "count memories")
	}
	return count, nil
}

func scanScoredMemory(row scanner) (ScoredMemory, error) {
	var r ScoredMemory
	var tagsJSON, seeAlsoJSON string
	var context, sessionID, sourceURL, sourceFile sql.NullString
	var supersedes sql.NullInt64
	var createdAt, updatedAt string

	err := row.Scan(
		&r.ID, &r.Content, &tagsJSON, &context, &r.Source, &sessionID,
		&supersedes, &seeAlsoJSON, &sourceURL, &sourceFile, &r.Importance,
		&createdAt, &updatedAt, &r.Score,
	)
	if err != nil {
		return r, err
	}

	r.Context = context.String
	r.SessionID = sessionID.String
	r.SourceURL = sourceURL.String
	r.SourceFile = sourceFile.String
	if supersedes.Valid {
		v := supersedes.Int64
		r.Supersedes = &v
	}
	json.Unmarshal([]byte(tagsJSON), &r.Tags)
	json.Unmarshal([]byte(seeAlsoJSON), &r.SeeAlso)
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	return r, nil
}
