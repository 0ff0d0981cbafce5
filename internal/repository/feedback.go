package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/josephvaleri/mlmp/constants"
	"github.com/josephvaleri/mlmp/internal/common"
	"github.com/josephvaleri/mlmp/internal/entity"
)

// FeedbackRepository persists extraction output and the user verdicts on it.
// Labeled rows are the training corpus the external trainer pulls.
type FeedbackRepository interface {
	SaveCandidates(ctx context.Context, menuID uuid.UUID, candidates []entity.Candidate) error
	Approve(ctx context.Context, candidateID uuid.UUID) (*entity.FeedbackLabel, error)
	Deny(ctx context.Context, candidateID uuid.UUID) (*entity.FeedbackLabel, error)
	Edit(ctx context.Context, candidateID uuid.UUID, editedText string) (*entity.FeedbackLabel, error)
	ListLabeled(ctx context.Context, since *time.Time) ([]*entity.FeedbackLabel, error)
}

type feedbackRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewFeedbackRepository(pool *pgxpool.Pool, logger *slog.Logger) FeedbackRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &feedbackRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *feedbackRepository) SaveCandidates(ctx context.Context, menuID uuid.UUID, candidates []entity.Candidate) error {
	batch := &pgx.Batch{}
	for _, c := range candidates {
		features, err := json.Marshal(c.Features)
		if err != nil {
			return err
		}
		headerCtx := textOrNil(c.HeaderContext)
		var matched *string
		if c.Match != nil {
			matched = &c.Match.Name
		}
		batch.Queue(`
			INSERT INTO candidates (id, menu_id, page_number, text, header_context, matched_name, features, confidence)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			c.ID, menuID, c.PageNumber, c.Text, headerCtx, matched, features, c.Confidence)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range candidates {
		if _, err := br.Exec(); err != nil {
			r.logger.Error("failed to save candidates", "menu_id", menuID, "error", err)
			return err
		}
	}
	r.logger.Info("candidates saved", "menu_id", menuID, "count", len(candidates))
	return nil
}

func (r *feedbackRepository) Approve(ctx context.Context, candidateID uuid.UUID) (*entity.FeedbackLabel, error) {
	return r.label(ctx, candidateID, constants.LabelApproved, nil)
}

func (r *feedbackRepository) Deny(ctx context.Context, candidateID uuid.UUID) (*entity.FeedbackLabel, error) {
	return r.label(ctx, candidateID, constants.LabelDenied, nil)
}

func (r *feedbackRepository) Edit(ctx context.Context, candidateID uuid.UUID, editedText string) (*entity.FeedbackLabel, error) {
	if editedText == "" {
		return nil, common.NewAppError(common.CodeInvalidArgument, "edited text must not be empty", nil)
	}
	return r.label(ctx, candidateID, constants.LabelEdited, &editedText)
}

// label snapshots the candidate's text and feature vector into the label row
// so the training corpus survives candidate deletion.
func (r *feedbackRepository) label(ctx context.Context, candidateID uuid.UUID, status constants.LabelStatus, editedText *string) (*entity.FeedbackLabel, error) {
	var (
		text       string
		pageNumber int
		features   []byte
		confidence float32
	)
	err := r.pool.QueryRow(ctx, `
		SELECT text, page_number, features, confidence
		FROM candidates WHERE id = $1`, candidateID).
		Scan(&text, &pageNumber, &features, &confidence)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, common.NewAppError(common.CodeNotFound, "candidate not found", err)
		}
		r.logger.Error("failed to load candidate", "candidate_id", candidateID, "error", err)
		return nil, err
	}

	lbl := &entity.FeedbackLabel{
		ID:          uuid.New(),
		CandidateID: candidateID,
		PageNumber:  pageNumber,
		Text:        text,
		EditedText:  editedText,
		Status:      status,
		Confidence:  confidence,
		CreatedAt:   time.Now().UTC(),
	}
	if err := json.Unmarshal(features, &lbl.Features); err != nil {
		r.logger.Error("malformed stored feature vector", "candidate_id", candidateID, "error", err)
		return nil, err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO feedback_labels (id, candidate_id, page_number, text, edited_text, status, features, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		lbl.ID, lbl.CandidateID, lbl.PageNumber, lbl.Text, lbl.EditedText, string(lbl.Status), features, lbl.Confidence, lbl.CreatedAt)
	if err != nil {
		r.logger.Error("failed to save feedback label", "candidate_id", candidateID, "error", err)
		return nil, err
	}
	r.logger.Info("feedback recorded", "candidate_id", candidateID, "status", status)
	return lbl, nil
}

func (r *feedbackRepository) ListLabeled(ctx context.Context, since *time.Time) ([]*entity.FeedbackLabel, error) {
	q := `
		SELECT id, candidate_id, page_number, text, edited_text, status, features, confidence, created_at
		FROM feedback_labels`
	args := []any{}
	if since != nil {
		q += ` WHERE created_at >= $1`
		args = append(args, *since)
	}
	q += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to list feedback labels", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.FeedbackLabel
	for rows.Next() {
		var (
			lbl      entity.FeedbackLabel
			status   string
			features []byte
		)
		err := rows.Scan(&lbl.ID, &lbl.CandidateID, &lbl.PageNumber, &lbl.Text, &lbl.EditedText,
			&status, &features, &lbl.Confidence, &lbl.CreatedAt)
		if err != nil {
			return nil, err
		}
		lbl.Status = constants.LabelStatus(status)
		if err := json.Unmarshal(features, &lbl.Features); err != nil {
			r.logger.Warn("skipping label with malformed features", "label_id", lbl.ID, "error", err)
			continue
		}
		out = append(out, &lbl)
	}
	return out, rows.Err()
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
