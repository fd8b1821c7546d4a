package bulk

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
)

func TestTransformBatch_Empty(t *testing.T) {
	out, err := TransformBatch(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Nil(t, out)

	out, err = TransformBatch([]Row{})
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Nil(t, out)
}

func TestTransformBatch_PreservesOrder(t *testing.T) {
	rows := make([]Row, 12)
	for i := range rows {
		rows[i] = Row{"name": fmt.Sprintf("PG %d", i), "totalBeds": i}
	}
	out, err := TransformBatch(rows)
	require.NoError(t, err)
	require.Len(t, out, len(rows))
	for i, l := range out {
		assert.Equal(t, fmt.Sprintf("PG %d", i), l.Name)
		assert.Equal(t, i, l.TotalBeds)
	}
}

func TestTransformBatch_TwoRowScenario(t *testing.T) {
	rows := []Row{
		{"name": "A", "oneSharing_available": "true", "oneSharing_price": "8000"},
		{"name": "B"},
	}
	out, err := TransformBatch(rows)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, domain.SharingTier{Available: true, Price: 8000}, out[0].Sharing.One)
	assert.Equal(t, domain.SharingTier{Available: false, Price: 0}, out[1].Sharing.One)
}

func TestPreview(t *testing.T) {
	records := make([]domain.Listing, 7)
	assert.Len(t, Preview(records, DefaultPreviewSize), 5)
	assert.Len(t, Preview(records[:3], DefaultPreviewSize), 3)
	assert.Empty(t, Preview(records, -1))
}

func TestGenerateTemplate_ParsesBackIntoOneListing(t *testing.T) {
	data, err := GenerateTemplate()
	require.NoError(t, err)

	rows, err := ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	for _, col := range Columns() {
		assert.Contains(t, rows[0], col, "template column %s must carry an example value", col)
	}

	out, err := TransformBatch(rows)
	require.NoError(t, err)
	l := out[0]
	assert.Equal(t, "Green Nest PG", l.Name)
	assert.Equal(t, "9876543210", l.ContactPhone)
	assert.Equal(t, 24, l.TotalBeds)
	assert.Equal(t, domain.SharingTier{Available: true, Price: 12000}, l.Sharing.One)
	assert.Equal(t, domain.SharingTier{Available: true, Price: 8000}, l.Sharing.Two)
	assert.Equal(t, domain.SharingTier{}, l.Sharing.Five)
	assert.True(t, l.Amenities.WiFi)
	assert.Equal(t, "500 m", l.NearbyPlaces.Hospital)
}

func TestParseWorkbook_SkipsBlankRowsAndHeaderlessCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"name", "oneSharing_price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"First", "9000", "extra"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"Third"}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	rows, err := ParseWorkbook(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"name": "First", "oneSharing_price": "9000"}, rows[0])
	assert.Equal(t, Row{"name": "Third"}, rows[1])
}

func TestParseWorkbook_HeaderOnlyYieldsNoRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &[]any{"name"}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	rows, err := ParseWorkbook(&buf)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = TransformBatch(rows)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestParseWorkbook_RejectsNonXLSX(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("name,price\nA,1\n")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
