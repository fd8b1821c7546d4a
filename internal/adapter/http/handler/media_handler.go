package handler

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/draft"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/usecase"
)

// parseUpload reads a multipart form bounded by the configured upload size.
func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form: " + err.Error()})
		return false
	}
	return true
}

// formFile opens the named part. The caller closes the returned file.
func formFile(r *http.Request, field string) (usecase.MediaFile, multipart.File, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return usecase.MediaFile{}, nil, fmt.Errorf("%w: missing file field %q", errBadRequest, field)
	}
	return usecase.MediaFile{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}, f, nil
}

func indexParam(r *http.Request) (int, error) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, fmt.Errorf("%w: index must be an integer", errBadRequest)
	}
	return i, nil
}

func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}
	file, closer, err := formFile(r, "file")
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer closer.Close()

	l, err := h.media.UploadPhoto(r.Context(), chi.URLParam(r, "id"), file,
		domain.MediaCategory(r.FormValue("category")), r.FormValue("caption"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, l)
}

// videoForm opens the "file" and optional "thumbnail" parts and reads the
// video metadata fields. The caller runs cleanup when err is nil.
func videoForm(r *http.Request) (video usecase.MediaFile, thumb *usecase.MediaFile, meta domain.Video, cleanup func(), err error) {
	video, vf, err := formFile(r, "file")
	if err != nil {
		return video, nil, meta, nil, err
	}
	closers := []multipart.File{vf}
	if len(r.MultipartForm.File["thumbnail"]) > 0 {
		t, tf, err := formFile(r, "thumbnail")
		if err != nil {
			vf.Close()
			return video, nil, meta, nil, err
		}
		closers = append(closers, tf)
		thumb = &t
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)
	meta = domain.Video{
		Category: domain.MediaCategory(r.FormValue("category")),
		Caption:  r.FormValue("caption"),
		Duration: duration,
	}
	return video, thumb, meta, func() {
		for _, c := range closers {
			c.Close()
		}
	}, nil
}

func (h *Handler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}
	video, thumb, meta, cleanup, err := videoForm(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer cleanup()

	l, err := h.media.UploadVideo(r.Context(), chi.URLParam(r, "id"), video, thumb, meta)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, l)
}

func (h *Handler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	l, err := h.media.RemovePhoto(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

func (h *Handler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	l, err := h.media.RemoveVideo(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

// UploadDraftPhoto stores a photo for the record in the draft slot and
// appends it to the draft.
func (h *Handler) UploadDraftPhoto(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}
	file, closer, err := formFile(r, "file")
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer closer.Close()

	rec := h.form.Open(r.Context(), nil)
	url, err := h.media.Store(r.Context(), rec.ID, usecase.MediaPhotos, file)
	if err != nil {
		h.writeError(w, err)
		return
	}
	photo := domain.Photo{
		URL:      url,
		Category: usecase.CategoryOrOther(domain.MediaCategory(r.FormValue("category"))),
		Caption:  r.FormValue("caption"),
	}
	rec = h.form.Apply(r.Context(), rec, func(l *domain.Listing) {
		l.Photos = append(l.Photos, photo)
	})
	h.logger.Debug("Photo added to draft", zap.String("url", url))
	h.writeJSON(w, http.StatusCreated, rec)
}

// UploadDraftVideo stores a video, and an optional thumbnail, for the
// record in the draft slot and appends it to the draft.
func (h *Handler) UploadDraftVideo(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}
	video, thumb, meta, cleanup, err := videoForm(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer cleanup()

	rec := h.form.Open(r.Context(), nil)
	v, err := h.media.StoreVideo(r.Context(), rec.ID, video, thumb, meta)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rec = h.form.Apply(r.Context(), rec, func(l *domain.Listing) {
		l.Videos = append(l.Videos, v)
	})
	h.logger.Debug("Video added to draft", zap.String("url", v.VideoURL))
	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) RemoveDraftPhoto(w http.ResponseWriter, r *http.Request) {
	h.removeFromDraft(w, r, h.media.RemoveDraftPhoto)
}

func (h *Handler) RemoveDraftVideo(w http.ResponseWriter, r *http.Request) {
	h.removeFromDraft(w, r, h.media.RemoveDraftVideo)
}

// removeFromDraft drops one media item from the stored draft and saves it.
func (h *Handler) removeFromDraft(w http.ResponseWriter, r *http.Request, remove func(context.Context, *domain.Listing, int) error) {
	index, err := indexParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rec, ok := h.drafts.LoadDraft(r.Context())
	if !ok {
		h.writeError(w, draft.ErrNoDraft)
		return
	}
	if err := remove(r.Context(), rec, index); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.form.Apply(r.Context(), rec, nil))
}
