// Package processor coordinates the per-document extraction flow: decode the
// OCR page dump, run the extraction core page by page, and hand the ranked
// candidates to the feedback store.
package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/extractor"
	"github.com/josephvaleri/mlmp/internal/ingest"
	"github.com/josephvaleri/mlmp/internal/repository"
)

// DocumentResult is the outcome of processing one multi-page menu document.
type DocumentResult struct {
	MenuID     uuid.UUID
	Pages      int
	Candidates []entity.Candidate
	Elapsed    time.Duration
}

// Processor runs extraction over whole documents. Pages are processed in
// order: header lookups and spacing heuristics depend on line sequence, and
// page order keeps output deterministic.
type Processor struct {
	Extractor     *extractor.Extractor
	Feedback      repository.FeedbackRepository // nil disables persistence
	MaxCandidates int
	Logger        *slog.Logger
}

func NewProcessor(ex *extractor.Extractor, feedback repository.FeedbackRepository, maxCandidates int, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Extractor:     ex,
		Feedback:      feedback,
		MaxCandidates: maxCandidates,
		Logger:        logger,
	}
}

// ProcessPages extracts candidates from an in-memory page sequence. The
// per-page top-N cap applies within each page; the combined list keeps page
// order and is not re-truncated, so callers see every page's best candidates.
func (p *Processor) ProcessPages(ctx context.Context, menuID uuid.UUID, pages []entity.OcrPage) (DocumentResult, error) {
	start := time.Now()
	result := DocumentResult{MenuID: menuID, Pages: len(pages)}

	for _, page := range pages {
		cands := p.Extractor.Extract(ctx, page, p.MaxCandidates)
		p.Logger.Info("processor.page.ok",
			"menu_id", menuID,
			"page", page.PageNumber,
			"lines", len(page.Lines),
			"candidates", len(cands),
		)
		result.Candidates = append(result.Candidates, cands...)
	}

	if p.Feedback != nil && len(result.Candidates) > 0 {
		if err := p.Feedback.SaveCandidates(ctx, menuID, result.Candidates); err != nil {
			p.Logger.Error("processor.persist.failed", "menu_id", menuID, "err", err)
			return result, err
		}
	}

	result.Elapsed = time.Since(start)
	p.Logger.Info("processor.document.ok",
		"menu_id", menuID,
		"pages", result.Pages,
		"candidates", len(result.Candidates),
		"elapsed_ms", result.Elapsed.Milliseconds(),
	)
	return result, nil
}

// ProcessDump decodes the page dump file at path and processes it under a
// fresh menu ID.
func (p *Processor) ProcessDump(ctx context.Context, path string) (DocumentResult, error) {
	pages, err := ingest.ReadPageDump(path)
	if err != nil {
		p.Logger.Error("processor.decode.failed", "path", path, "err", err)
		return DocumentResult{}, err
	}
	menuID := uuid.New()
	p.Logger.Info("processor.document.start", "menu_id", menuID, "path", path, "pages", len(pages))
	return p.ProcessPages(ctx, menuID, pages)
}
