package handler

import (
	"net/http"
	"strings"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/bulk"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type commitRequest struct {
	Records []domain.Listing `json:"records"`
}

func (h *Handler) BulkTemplate(w http.ResponseWriter, _ *http.Request) {
	data, err := h.bulk.Template()
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="pg_listing_template.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// BulkPreview accepts an .xlsx upload in the "file" field, or a JSON array
// of rows keyed by template column.
func (h *Handler) BulkPreview(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var rows []bulk.Row
		if !h.decodeJSON(w, r, &rows) {
			return
		}
		preview, err := h.bulk.PreviewRows(rows)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, preview)
		return
	}

	if !h.parseUpload(w, r) {
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: `missing file field "file"`})
		return
	}
	defer f.Close()

	preview, err := h.bulk.PreviewWorkbook(f)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, preview)
}

// BulkCommit creates the confirmed records. Partial failure still answers
// 200 with per-row results.
func (h *Handler) BulkCommit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	report, err := h.bulk.Commit(r.Context(), req.Records)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}
