package bulk

import "github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"

// DefaultPreviewSize is how many transformed records an operator reviews
// before confirming an import.
const DefaultPreviewSize = 5

// TransformBatch transforms every row, preserving order. It returns
// domain.ErrEmptyInput and no records when rows is empty.
func TransformBatch(rows []Row) ([]domain.Listing, error) {
	if len(rows) == 0 {
		return nil, domain.ErrEmptyInput
	}
	out := make([]domain.Listing, len(rows))
	for i, row := range rows {
		out[i] = TransformRow(row)
	}
	return out, nil
}

// Preview returns at most n leading records.
func Preview(records []domain.Listing, n int) []domain.Listing {
	if n < 0 {
		n = 0
	}
	if len(records) < n {
		n = len(records)
	}
	return records[:n]
}
