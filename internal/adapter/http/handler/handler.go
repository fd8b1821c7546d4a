package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/draft"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/usecase"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

const maxJSONBytes = 4 << 20

// Handler serves the REST API.
type Handler struct {
	listings  *usecase.ListingUsecase
	media     *usecase.MediaUsecase
	bulk      *usecase.BulkUsecase
	form      *usecase.FormService
	drafts    *draft.Service
	callbacks *usecase.CallbackUsecase

	validate       *validator.Validate
	maxUploadBytes int64
	logger         *logger.Logger
}

type Deps struct {
	Listings       *usecase.ListingUsecase
	Media          *usecase.MediaUsecase
	Bulk           *usecase.BulkUsecase
	Form           *usecase.FormService
	Drafts         *draft.Service
	Callbacks      *usecase.CallbackUsecase
	MaxUploadBytes int64
}

func New(d Deps, log *logger.Logger) *Handler {
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 50 << 20
	}
	return &Handler{
		listings:       d.Listings,
		media:          d.Media,
		bulk:           d.Bulk,
		form:           d.Form,
		drafts:         d.Drafts,
		callbacks:      d.Callbacks,
		validate:       validator.New(),
		maxUploadBytes: d.MaxUploadBytes,
		logger:         log.Named("HTTPHandler"),
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors to HTTP statuses. Unknown errors are 500
// and their text is not exposed.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Namespace()] = fe.Tag()
		}
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrMediaNotFound),
		errors.Is(err, domain.ErrCallbackNotFound),
		errors.Is(err, draft.ErrNoDraft):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidListingData),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, errBadRequest):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

var errBadRequest = errors.New("bad request")

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	if err := dec.Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// decodeListing decodes a listing body over a fully defaulted record.
func (h *Handler) decodeListing(w http.ResponseWriter, r *http.Request) (*domain.Listing, bool) {
	l := domain.NewListing()
	if !h.decodeJSON(w, r, l) {
		return nil, false
	}
	return l, true
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
