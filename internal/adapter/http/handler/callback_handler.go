package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
)

type callbackStatusRequest struct {
	Status domain.CallbackStatus `json:"status" validate:"required,oneof=pending contacted completed cancelled"`
}

func (h *Handler) CreateCallback(w http.ResponseWriter, r *http.Request) {
	var req domain.CallbackRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Type == "" {
		req.Type = domain.CallbackTypeCallback
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.callbacks.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListCallbacks(w http.ResponseWriter, r *http.Request) {
	items, err := h.callbacks.List(r.Context(), domain.CallbackStatus(r.URL.Query().Get("status")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if items == nil {
		items = []*domain.CallbackRequest{}
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateCallbackStatus(w http.ResponseWriter, r *http.Request) {
	var req callbackStatusRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, err)
		return
	}
	cb, err := h.callbacks.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cb)
}
