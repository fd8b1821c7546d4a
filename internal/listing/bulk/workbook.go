package bulk

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
)

const templateSheet = "PG Listings"

// templateExample fills the example row of the generated template.
var templateExample = map[string]any{
	ColName:         "Green Nest PG",
	ColOwnerName:    "Ramesh Kumar",
	ColContactPhone: "9876543210",
	ColContactEmail: "owner@example.com",
	ColGender:       "unisex",
	ColAddress:      "12, 4th Cross, Koramangala",
	ColLocation:     "Koramangala, Bengaluru",
	ColPincode:      "560034",
	ColDescription:  "Fully furnished PG close to the tech park",
	ColTotalBeds:    24,
	ColDeposit:      domain.DefaultDeposit,
	ColLockIn:       domain.DefaultLockInMonths,
	ColMaintenance:  500,
	ColWashroomType: "attached",
	ColFurnishing:   "fully",
}

func exampleValue(col string) any {
	if v, ok := templateExample[col]; ok {
		return v
	}
	switch col {
	case string(domain.TierOne) + availableSuffix, string(domain.TierTwo) + availableSuffix:
		return "true"
	case string(domain.TierOne) + priceSuffix:
		return 12000
	case string(domain.TierTwo) + priceSuffix:
		return 8000
	}
	switch {
	case strings.HasPrefix(col, nearbyPrefix):
		return "500 m"
	case strings.HasPrefix(col, amenityPrefix):
		return "true"
	case strings.HasSuffix(col, availableSuffix):
		return "false"
	case strings.HasSuffix(col, priceSuffix):
		return 0
	}
	return ""
}

// GenerateTemplate builds an .xlsx workbook with every recognized column in
// the header row and one populated example row.
func GenerateTemplate() ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(templateSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bulk: create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("bulk: delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bulk: header style: %w", err)
	}

	for i, col := range Columns() {
		header, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("bulk: header cell: %w", err)
		}
		if err := f.SetCellValue(templateSheet, header, col); err != nil {
			f.Close()
			return nil, fmt.Errorf("bulk: set header %s: %w", header, err)
		}
		if err := f.SetCellStyle(templateSheet, header, header, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("bulk: style header %s: %w", header, err)
		}
		example, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("bulk: example cell: %w", err)
		}
		if err := f.SetCellValue(templateSheet, example, exampleValue(col)); err != nil {
			f.Close()
			return nil, fmt.Errorf("bulk: set example %s: %w", example, err)
		}
	}

	if err := f.SetPanes(templateSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("bulk: freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("bulk: write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("bulk: close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseWorkbook reads the first sheet of an .xlsx workbook. The first row is
// the header; each following non-blank row becomes a Row holding only its
// non-empty cells. Inputs that are not .xlsx workbooks (legacy .xls
// included) fail with domain.ErrUnsupportedFormat.
func ParseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, domain.ErrEmptyInput
	}
	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("bulk: read rows of %q: %w", sheet, err)
	}
	if len(grid) == 0 {
		return []Row{}, nil
	}

	header := grid[0]
	rows := make([]Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(Row, len(cells))
		for i, cell := range cells {
			if i >= len(header) || header[i] == "" || cell == "" {
				continue
			}
			row[header[i]] = cell
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
