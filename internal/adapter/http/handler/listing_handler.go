package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/http/middleware"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/usecase"
)

type listingPage struct {
	Items []*domain.Listing `json:"items"`
	Total int64             `json:"total"`
	Page  int64             `json:"page"`
	Limit int64             `json:"limit"`
	// Draft is the unsaved onboarding form, shown on admin tables only.
	Draft *domain.Listing `json:"draft,omitempty"`
}

type statusRequest struct {
	Status domain.ListingStatus `json:"status" validate:"required,oneof=initial verification listing active"`
}

func parseFilter(q url.Values) (domain.Filter, error) {
	f := domain.Filter{
		Query:  q.Get("q"),
		Gender: domain.Gender(q.Get("gender")),
		Status: domain.ListingStatus(q.Get("status")),
	}
	var err error
	parseFloat := func(key string) float64 {
		v := q.Get(key)
		if v == "" || err != nil {
			return 0
		}
		n, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			err = fmt.Errorf("%w: %s must be a number", errBadRequest, key)
		}
		return n
	}
	parseInt := func(key string) int64 {
		v := q.Get(key)
		if v == "" || err != nil {
			return 0
		}
		n, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			err = fmt.Errorf("%w: %s must be an integer", errBadRequest, key)
		}
		return n
	}
	f.MinPrice = parseFloat("minPrice")
	f.MaxPrice = parseFloat("maxPrice")
	f.Page = parseInt("page")
	f.Limit = parseInt("limit")
	return f, err
}

// SearchPublic lists active PGs only.
func (h *Handler) SearchPublic(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	filter.Status = domain.StatusActive
	h.search(w, r, filter, false)
}

// SearchAdmin lists PGs in any status, with the stored draft on top.
func (h *Handler) SearchAdmin(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.search(w, r, filter, true)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, filter domain.Filter, withDraft bool) {
	filter = usecase.PageFilter(filter)
	items, total, err := h.listings.Search(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	page := listingPage{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}
	if page.Items == nil {
		page.Items = []*domain.Listing{}
	}
	if withDraft {
		if d, ok := h.drafts.DraftView(r.Context()); ok {
			page.Draft = d
		}
	}
	h.writeJSON(w, http.StatusOK, page)
}

// GetListing serves one listing. Anonymous callers only see active
// listings; any other status reads as not found.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	l, err := h.listings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if middleware.Role(r.Context()) == middleware.RoleAnonymous && l.Status != domain.StatusActive {
		h.writeError(w, fmt.Errorf("%w: %s", domain.ErrListingNotFound, l.ID))
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	l, ok := h.decodeListing(w, r)
	if !ok {
		return
	}
	if err := h.validate.Struct(l); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.listings.Create(r.Context(), l)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	l, ok := h.decodeListing(w, r)
	if !ok {
		return
	}
	l.ID = chi.URLParam(r, "id")
	if err := h.validate.Struct(l); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.listings.Update(r.Context(), l)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := h.listings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateListingStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, err)
		return
	}
	l, err := h.listings.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}
