package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/draft"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/usecase"
)

type submitResponse struct {
	Listing  *domain.Listing `json:"listing"`
	Geocoded bool            `json:"geocoded"`
	Close    bool            `json:"close"`
}

// GetDraft opens the onboarding form: the stored draft or a fresh record.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.form.Open(r.Context(), nil))
}

// SaveDraft stores the whole form state. The client sends it on every
// field change. Media the previous state held and this one dropped is
// released.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decodeListing(w, r)
	if !ok {
		return
	}
	prev, _ := h.drafts.LoadDraft(r.Context())
	rec = h.form.Apply(r.Context(), rec, nil)
	h.media.ReleaseDropped(r.Context(), prev, rec)
	h.writeJSON(w, http.StatusOK, rec)
}

// CloseDraft saves the form state when the form is dismissed.
func (h *Handler) CloseDraft(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decodeListing(w, r)
	if !ok {
		return
	}
	h.form.Close(r.Context(), rec)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.drafts.ClearDraft(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditListing starts an edit session for a stored listing. The listing
// takes over the draft slot.
func (h *Handler) EditListing(w http.ResponseWriter, r *http.Request) {
	l, err := h.listings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	rec := h.form.Open(r.Context(), l)
	h.writeJSON(w, http.StatusOK, h.form.Apply(r.Context(), rec, nil))
}

// SubmitDraft finalizes the stored draft and creates or updates the
// listing it holds.
func (h *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	var choice usecase.DepositChoice
	if !h.decodeJSON(w, r, &choice) {
		return
	}
	rec, ok := h.drafts.LoadDraft(r.Context())
	if !ok {
		h.writeError(w, draft.ErrNoDraft)
		return
	}

	creating := rec.ID == ""
	res, err := h.form.Submit(r.Context(), rec, choice, h.persist)
	if err != nil {
		h.writeError(w, err)
		return
	}
	status := http.StatusOK
	if creating {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, submitResponse{Listing: res.Listing, Geocoded: res.Geocoded, Close: res.Close})
}

func (h *Handler) persist(ctx context.Context, l *domain.Listing) error {
	if err := h.validate.Struct(l); err != nil {
		return err
	}
	var (
		saved *domain.Listing
		err   error
	)
	if l.ID == "" {
		saved, err = h.listings.Create(ctx, l)
	} else {
		saved, err = h.listings.Update(ctx, l)
	}
	if err != nil {
		return err
	}
	*l = *saved
	return nil
}
