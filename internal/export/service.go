package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/repository"
)

// Service is a tiny façade over the feedback store that produces XLSX bytes
// for review exports.
type Service struct {
	feedback repository.FeedbackRepository
	logger   *slog.Logger
}

func NewService(feedback repository.FeedbackRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{feedback: feedback, logger: logger}
}

// ExportLabelsXLSX returns an XLSX workbook of labeled candidates since the
// given time. Nil since exports the full corpus.
func (s *Service) ExportLabelsXLSX(ctx context.Context, since *time.Time) ([]byte, error) {
	start := time.Now()

	labels, err := s.feedback.ListLabeled(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}

	buf, err := LabelsWorkbook(labels)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(labels),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf, nil
}

// LabelsWorkbook renders label rows into workbook bytes. Split out from the
// store-backed export so callers holding in-memory labels can reuse it.
func LabelsWorkbook(labels []*entity.FeedbackLabel) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Labels"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Labeled At",
		"Page",
		"Candidate Text",
		"Edited Text",
		"Verdict",
		"Confidence",
		"Tokens",
		"All Caps",
		"Price On Line",
		"Under Entree Header",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, lbl := range labels {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, lbl.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		write(2, lbl.PageNumber)
		write(3, truncate(lbl.Text, 140))
		if lbl.EditedText != nil {
			write(4, truncate(*lbl.EditedText, 140))
		} else {
			write(4, "")
		}
		write(5, string(lbl.Status))
		write(6, fmt.Sprintf("%.3f", lbl.Confidence))
		write(7, lbl.Features.TokenCount)
		write(8, lbl.Features.AllCaps)
		write(9, lbl.Features.PriceOnLine)
		write(10, lbl.Features.UnderEntreeHeader)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheet, "C", "D", 40) // texts
	_ = f.SetColWidth(sheet, "E", "F", 12)
	_ = f.SetColWidth(sheet, "G", "J", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// CandidatesWorkbook renders freshly extracted candidates for human review
// before any labeling happens.
func CandidatesWorkbook(candidates []entity.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Candidates"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Page",
		"Candidate Text",
		"Confidence",
		"Section",
		"Dictionary Match",
		"Match Type",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, c := range candidates {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, c.PageNumber)
		write(2, truncate(c.Text, 140))
		write(3, fmt.Sprintf("%.3f", c.Confidence))
		write(4, c.HeaderContext)
		if c.Match != nil {
			write(5, c.Match.Name)
			write(6, string(c.Match.Type))
		}

		row++
	}

	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "D", "E", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
