package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/bulk"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

func TestBulkUsecase_PreviewRows(t *testing.T) {
	uc := NewBulkUsecase(nil, 2, 0, logger.NewNop())

	rows := []bulk.Row{{"name": "A"}, {"name": "B"}, {"name": "C"}}
	p, err := uc.PreviewRows(rows)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Total)
	require.Len(t, p.Preview, 2)
	assert.Equal(t, "A", p.Preview[0].Name)
	assert.Len(t, p.Records, 3)

	_, err = uc.PreviewRows(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestBulkUsecase_PreviewWorkbookFromTemplate(t *testing.T) {
	uc := NewBulkUsecase(nil, 0, 0, logger.NewNop())

	tpl, err := uc.Template()
	require.NoError(t, err)

	p, err := uc.PreviewWorkbook(bytes.NewReader(tpl))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Total)
	assert.Len(t, p.Preview, 1)

	_, err = uc.PreviewWorkbook(bytes.NewReader([]byte("name,location\nA,B\n")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestBulkUsecase_CommitReportsPerRow(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()
	uc := NewBulkUsecase(f.uc, 0, 2, logger.NewNop())

	var seq atomic.Int32
	f.repo.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool { return l.Name != "Broken" })).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Listing).ID = fmt.Sprintf("id-%d", seq.Add(1))
		}).Return(nil)
	f.repo.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool { return l.Name == "Broken" })).
		Return(errors.New("duplicate key"))
	f.publisher.On("Publish", ctx, domain.SubjectListingCreated, mock.Anything).Return(nil)
	f.publisher.On("Publish", ctx, domain.SubjectBulkImported, map[string]int{"created": 3, "failed": 2}).Return(nil).Once()

	records := []domain.Listing{
		{Name: "One"}, {Name: "Broken"}, {Name: "Two"}, {Name: ""}, {Name: "Three"},
	}
	report, err := uc.Commit(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Created)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Results, 5)
	for i, res := range report.Results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, records[i].Name, res.Name)
	}
	assert.NotEmpty(t, report.Results[0].ID)
	assert.Contains(t, report.Results[1].Error, "duplicate key")
	assert.NotEmpty(t, report.Results[3].Error)
	assert.Equal(t, float64(3), testutil.ToFloat64(f.metrics.BulkRowsTotal.WithLabelValues("created")))
	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.BulkRowsTotal.WithLabelValues("failed")))
	f.publisher.AssertExpectations(t)
}

func TestBulkUsecase_CommitValidatesEachRow(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()
	uc := NewBulkUsecase(f.uc, 0, 0, logger.NewNop())

	f.repo.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool { return l.Name == "Valid PG" })).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Listing).ID = "id-1" }).
		Return(nil).Once()
	f.publisher.On("Publish", ctx, mock.Anything, mock.Anything).Return(nil)

	sheet := bulk.TransformRow(bulk.Row{"name": "Bad email", "contactEmail": "owner-at-example"})
	records := []domain.Listing{
		{Name: "Valid PG", ContactEmail: "owner@example.com"},
		sheet,
		{Name: "Negative beds", TotalBeds: -2},
		{Name: "Odd gender", Gender: "xyz"},
		{Name: "Negative lock-in", LockInPeriod: -1},
	}
	report, err := uc.Commit(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 4, report.Failed)
	assert.Equal(t, "id-1", report.Results[0].ID)
	assert.Contains(t, report.Results[1].Error, "ContactEmail")
	assert.Contains(t, report.Results[2].Error, "TotalBeds")
	assert.Contains(t, report.Results[3].Error, "Gender")
	assert.Contains(t, report.Results[4].Error, "LockInPeriod")
	f.repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestBulkUsecase_CommitEmpty(t *testing.T) {
	uc := NewBulkUsecase(newListingFixture().uc, 0, 0, logger.NewNop())
	_, err := uc.Commit(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}
