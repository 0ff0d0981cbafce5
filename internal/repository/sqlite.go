package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/josephvaleri/mlmp/internal/entity"
)

// SQLiteDictionary is the embedded, file-backed variant of the dictionary
// store used by the CLI when no Postgres DSN is configured. Same matcher
// contract as the Postgres store; synonyms persist as a JSON array column.
type SQLiteDictionary struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLiteDictionary opens (creating if needed) the dictionary database at
// path and ensures the schema exists.
func OpenSQLiteDictionary(ctx context.Context, path string, logger *slog.Logger) (*SQLiteDictionary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open dictionary database", "path", path, "error", err)
		return nil, err
	}
	s := &SQLiteDictionary{db: db, logger: logger}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteDictionary) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS entree_names (
			normalized TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT '',
			synonyms   TEXT NOT NULL DEFAULT '[]'
		)`)
	if err != nil {
		s.logger.Error("failed to create dictionary schema", "error", err)
	}
	return err
}

func (s *SQLiteDictionary) Close() error {
	return s.db.Close()
}

func (s *SQLiteDictionary) Lookup(ctx context.Context, normalized string) ([]entity.EntreeName, error) {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT name, normalized, category, synonyms FROM entree_names WHERE normalized = ?`)
	args := []any{normalized}
	for _, t := range tokens {
		sb.WriteString(` OR normalized LIKE ?`)
		args = append(args, "%"+t+"%")
	}
	sb.WriteString(` LIMIT ?`)
	args = append(args, lookupLimit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		s.logger.Error("failed to query entree dictionary", "text", normalized, "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []entity.EntreeName
	for rows.Next() {
		var e entity.EntreeName
		var synonyms string
		if err := rows.Scan(&e.Name, &e.Normalized, &e.Category, &synonyms); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(synonyms), &e.Synonyms); err != nil {
			s.logger.Warn("malformed synonym list", "normalized", e.Normalized, "error", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteDictionary) Upsert(ctx context.Context, entries []entity.EntreeName) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entree_names (normalized, name, category, synonyms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (normalized) DO UPDATE
		SET name = excluded.name, category = excluded.category, synonyms = excluded.synonyms`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	written := 0
	for _, e := range entries {
		synonyms, err := json.Marshal(e.Synonyms)
		if err != nil {
			return written, err
		}
		if e.Synonyms == nil {
			synonyms = []byte("[]")
		}
		if _, err := stmt.ExecContext(ctx, e.Normalized, e.Name, e.Category, string(synonyms)); err != nil {
			s.logger.Error("failed to upsert entree name", "normalized", e.Normalized, "error", err)
			return written, err
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.logger.Info("entree dictionary updated", "entries", written)
	return written, nil
}

func (s *SQLiteDictionary) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM entree_names`).Scan(&n)
	if err != nil {
		s.logger.Error("failed to count entree names", "error", err)
		return 0, err
	}
	return n, nil
}
