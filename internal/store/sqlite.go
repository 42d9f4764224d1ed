package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rcliao/mem/internal/memerr"
	"github.com/rcliao/mem/internal/model"
)

// SQLiteStore implements Store using SQLite with an FTS5 index over
// content and context.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, memerr.Wrapf(err, memerr.CodeStoreDatabase, "open db")
	}

	s := &SQLiteStore{db: db, path: dbPath, logger: slog.Default()}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, memerr.Wrapf(err, memerr.CodeStoreDatabase, "migrate")
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		content     TEXT NOT NULL,
		tags        TEXT NOT NULL DEFAULT '[]',
		context     TEXT,
		source      TEXT NOT NULL DEFAULT 'user',
		session_id  TEXT,
		supersedes  INTEGER,
		see_also    TEXT NOT NULL DEFAULT '[]',
		source_url  TEXT,
		source_file TEXT,
		importance  INTEGER NOT NULL DEFAULT 3,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_session ON memories(session_id);
	CREATE INDEX IF NOT EXISTS idx_memories_created ON memories(created_at DESC);

	CREATE VIRTUAL TABLE IF NOT EXISTS memories_fts USING fts5(
		content,
		context,
		content=memories,
		content_rowid=id,
		tokenize='porter unicode61'
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers for automatic sync
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS memories_ai AFTER INSERT ON memories BEGIN
		INSERT INTO memories_fts(rowid, content, context) VALUES (new.id, new.content, new.context);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS memories_ad AFTER DELETE ON memories BEGIN
		INSERT INTO memories_fts(memories_fts, rowid, content, context) VALUES ('delete', old.id, old.content, old.context);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS memories_au AFTER UPDATE ON memories BEGIN
		INSERT INTO memories_fts(memories_fts, rowid, content, context) VALUES ('delete', old.id, old.content, old.context);
		INSERT INTO memories_fts(rowid, content, context) VALUES (new.id, new.content, new.context);
	END`)

	return nil
}

const memoryCols = `id, content, tags, context, source, session_id, supersedes,
	see_also, source_url, source_file, importance, created_at, updated_at`

func (s *SQLiteStore) Save(ctx context.Context, m *model.Memory) error {
	if m.ID == 0 && strings.TrimSpace(m.Content) == "" {
		return memerr.New(memerr.CodeStoreInvalidInput, "content is required")
	}
	if m.Importance == 0 {
		m.Importance = model.DefaultImportance
	}
	if m.Importance < 1 || m.Importance > 5 {
		return memerr.Errorf(memerr.CodeStoreInvalidInput, "importance must be 1-5, got %d", m.Importance)
	}
	if m.Source == "" {
		m.Source = model.DefaultSource
	}
	m.Tags = model.NormalizeTags(m.Tags)
	m.SeeAlso = model.NormalizeRefs(m.SeeAlso)

	tagsJSON := marshalJSON(m.Tags)
	seeAlsoJSON := marshalJSON(m.SeeAlso)

	now := time.Now().UTC()

	if m.ID == 0 {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		m.UpdatedAt = now

		res, err := s.db.ExecContext(ctx,
			`INSERT INTO memories (content, tags, context, source, session_id, supersedes,
			                       see_also, source_url, source_file, importance, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Content, tagsJSON, nullStr(m.Context), m.Source, nullStr(m.SessionID), m.Supersedes,
			seeAlsoJSON, nullStr(m.SourceURL), nullStr(m.SourceFile), m.Importance,
			formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
		if err != nil {
			return memerr.Wrapf(err, memerr.CodeStoreDatabase, "insert memory")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return memerr.Wrapf(err, memerr.CodeStoreDatabase, "insert memory id")
		}
		m.ID = id
		return nil
	}

	m.UpdatedAt = now
	res, err := s.db.ExecContext(ctx,
		`UPDATE memories SET content = ?, tags = ?, context = ?, source = ?, session_id = ?,
		        supersedes = ?, see_also = ?, source_url = ?, source_file = ?, importance = ?,
		        updated_at = ?
		 WHERE id = ?`,
		m.Content, tagsJSON, nullStr(m.Context), m.Source, nullStr(m.SessionID),
		m.Supersedes, seeAlsoJSON, nullStr(m.SourceURL), nullStr(m.SourceFile), m.Importance,
		formatTime(m.UpdatedAt), m.ID)
	if err != nil {
		return memerr.Wrapf(err, memerr.CodeStoreDatabase, "update memory")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return memerr.Errorf(memerr.CodeStoreNotFound, "memory %d not found", m.ID)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (*model.Memory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+memoryCols+` FROM memories WHERE id = ?`, id)

	m, err := scanMemory(row)
	if err == sql.ErrNoRows {
		return nil, memerr.Errorf(memerr.CodeStoreNotFound, "memory %d not found", id)
	}
	if err != nil {
		return nil, memerr.Wrapf(err, memerr.CodeStoreDatabase, "get memory %d", id)
	}
	return &m, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return memerr.Wrapf(err, memerr.CodeStoreDatabase, "delete memory %d", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return memerr.Errorf(memerr.CodeStoreNotFound, "memory %d not found", id)
	}
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]model.Memory, error) {
	return s.List(ctx, ListParams{})
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Memory, error) {
	query := `SELECT ` + memoryCols + ` FROM memories`
	var args []interface{}

	if !p.Since.IsZero() {
		query += ` WHERE created_at >= ?`
		args = append(args, formatTime(p.Since.UTC()))
	}
	query += ` ORDER BY id`
	if p.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, p.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, memerr.Wrapf(err, memerr.CodeStoreDatabase, "list memories")
	}
	defer rows.Close()

	var memories []model.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, memerr.Wrapf(err, memerr.CodeStoreDatabase, "scan memory")
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMemory(row scanner) (model.Memory, error) {
	var m model.Memory
	var tagsJSON, seeAlsoJSON string
	var context, sessionID, sourceURL, sourceFile sql.NullString
	var supersedes sql.NullInt64
	var createdAt, updatedAt string

	err := row.Scan(
		&m.ID, &m.Content, &tagsJSON, &context, &m.Source, &sessionID,
		&supersedes, &seeAlsoJSON, &sourceURL, &sourceFile, &m.Importance,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return m, err
	}

	m.Context = context.String
	m.SessionID = sessionID.String
	m.SourceURL = sourceURL.String
	m.SourceFile = sourceFile.String
	if supersedes.Valid {
		v := supersedes.Int64
		m.Supersedes = &v
	}
	json.Unmarshal([]byte(tagsJSON), &m.Tags)
	json.Unmarshal([]byte(seeAlsoJSON), &m.SeeAlso)
	m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	return m, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func marshalJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "[]"
	}
	return string(b)
}
