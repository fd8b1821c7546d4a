package usecase

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/bulk"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

// ImportPreview is what an operator confirms before a bulk commit.
type ImportPreview struct {
	Total   int              `json:"total"`
	Preview []domain.Listing `json:"preview"`
	Records []domain.Listing `json:"records"`
}

// RowResult is the outcome of one committed record. Index is the record's
// position in the committed batch.
type RowResult struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// CommitReport summarises a bulk commit. Rows are not rolled back: Created
// rows stay persisted when others fail.
type CommitReport struct {
	Created int         `json:"created"`
	Failed  int         `json:"failed"`
	Results []RowResult `json:"results"`
}

type BulkUsecase struct {
	listings       *ListingUsecase
	validate       *validator.Validate
	previewSize    int
	maxConcurrency int
	logger         *logger.Logger
}

// NewBulkUsecase builds the import flow. maxConcurrency <= 0 creates all
// rows concurrently.
func NewBulkUsecase(listings *ListingUsecase, previewSize, maxConcurrency int, log *logger.Logger) *BulkUsecase {
	if previewSize <= 0 {
		previewSize = bulk.DefaultPreviewSize
	}
	return &BulkUsecase{
		listings:       listings,
		validate:       validator.New(),
		previewSize:    previewSize,
		maxConcurrency: maxConcurrency,
		logger:         log.Named("BulkUsecase"),
	}
}

// Template returns the downloadable .xlsx import template.
func (uc *BulkUsecase) Template() ([]byte, error) {
	return bulk.GenerateTemplate()
}

// PreviewWorkbook parses an uploaded workbook and transforms every row.
func (uc *BulkUsecase) PreviewWorkbook(r io.Reader) (*ImportPreview, error) {
	rows, err := bulk.ParseWorkbook(r)
	if err != nil {
		uc.logger.Warn("Failed to parse import workbook", zap.Error(err))
		return nil, err
	}
	return uc.PreviewRows(rows)
}

// PreviewRows transforms already-parsed rows.
func (uc *BulkUsecase) PreviewRows(rows []bulk.Row) (*ImportPreview, error) {
	records, err := bulk.TransformBatch(rows)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("Bulk import parsed", zap.Int("rows", len(records)))
	return &ImportPreview{
		Total:   len(records),
		Preview: bulk.Preview(records, uc.previewSize),
		Records: records,
	}, nil
}

// Commit validates and creates every record concurrently and reports
// per-row outcomes. A failed row never stops the others.
func (uc *BulkUsecase) Commit(ctx context.Context, records []domain.Listing) (*CommitReport, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyInput
	}

	results := make([]RowResult, len(records))
	var g errgroup.Group
	if uc.maxConcurrency > 0 {
		g.SetLimit(uc.maxConcurrency)
	}
	for i := range records {
		i := i
		rec := records[i]
		g.Go(func() error {
			res := RowResult{Index: i, Name: rec.Name}
			created, err := uc.createRow(ctx, &rec)
			if err != nil {
				res.Error = err.Error()
			} else {
				res.ID = created.ID
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	report := &CommitReport{Results: results}
	for _, res := range results {
		if res.Error != "" {
			report.Failed++
		} else {
			report.Created++
		}
	}
	if m := uc.listings.metrics; m != nil {
		m.BulkRowsTotal.WithLabelValues("created").Add(float64(report.Created))
		m.BulkRowsTotal.WithLabelValues("failed").Add(float64(report.Failed))
	}
	uc.logger.Info("Bulk import committed", zap.Int("created", report.Created), zap.Int("failed", report.Failed))
	uc.listings.publish(ctx, domain.SubjectBulkImported, map[string]int{
		"created": report.Created,
		"failed":  report.Failed,
	})
	return report, nil
}

// createRow holds an imported record to the same rules as the form before
// creating it.
func (uc *BulkUsecase) createRow(ctx context.Context, rec *domain.Listing) (*domain.Listing, error) {
	if err := normalize(rec); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(rec); err != nil {
		return nil, err
	}
	return uc.listings.Create(ctx, rec)
}
