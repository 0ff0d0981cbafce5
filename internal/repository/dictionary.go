package repository

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/josephvaleri/mlmp/internal/entity"
)

// lookupLimit caps the candidate set handed back to the matcher; the matcher
// rescans every returned row with edit-distance math.
const lookupLimit = 200

// DictionaryRepository is the read/write surface of the reference dictionary
// of known dish names. The read half satisfies the matcher's Dictionary
// interface.
type DictionaryRepository interface {
	Lookup(ctx context.Context, normalized string) ([]entity.EntreeName, error)
	Upsert(ctx context.Context, entries []entity.EntreeName) (int, error)
	Count(ctx context.Context) (int, error)
}

type dictionaryRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDictionaryRepository(pool *pgxpool.Pool, logger *slog.Logger) DictionaryRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &dictionaryRepository{
		pool:   pool,
		logger: logger,
	}
}

// Lookup prefilters by exact normalized form plus per-token containment and
// leaves the final exact/partial/fuzzy classification to the matcher.
func (r *dictionaryRepository) Lookup(ctx context.Context, normalized string) ([]entity.EntreeName, error) {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return nil, nil
	}
	patterns := make([]string, len(tokens))
	for i, t := range tokens {
		patterns[i] = "%" + t + "%"
	}

	rows, err := r.pool.Query(ctx, `
		SELECT name, normalized, category, synonyms
		FROM entree_names
		WHERE normalized = $1 OR normalized ILIKE ANY($2)
		LIMIT $3`,
		normalized, patterns, lookupLimit)
	if err != nil {
		r.logger.Error("failed to query entree dictionary", "text", normalized, "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanEntrees(rows)
}

// Upsert inserts or refreshes dictionary entries keyed by normalized form.
func (r *dictionaryRepository) Upsert(ctx context.Context, entries []entity.EntreeName) (int, error) {
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO entree_names (name, normalized, category, synonyms)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (normalized) DO UPDATE
			SET name = EXCLUDED.name, category = EXCLUDED.category, synonyms = EXCLUDED.synonyms`,
			e.Name, e.Normalized, e.Category, e.Synonyms)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	written := 0
	for range entries {
		if _, err := br.Exec(); err != nil {
			r.logger.Error("failed to upsert entree name", "error", err)
			return written, err
		}
		written++
	}
	r.logger.Info("entree dictionary updated", "entries", written)
	return written, nil
}

func (r *dictionaryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM entree_names`).Scan(&n); err != nil {
		r.logger.Error("failed to count entree names", "error", err)
		return 0, err
	}
	return n, nil
}

func scanEntrees(rows pgx.Rows) ([]entity.EntreeName, error) {
	var out []entity.EntreeName
	for rows.Next() {
		var e entity.EntreeName
		var category *string
		if err := rows.Scan(&e.Name, &e.Normalized, &category, &e.Synonyms); err != nil {
			return nil, err
		}
		if category != nil {
			e.Category = *category
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
