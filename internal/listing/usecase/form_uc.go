package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/draft"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/metrics"
)

// DepositCustom is the deposit choice that takes the amount from
// DepositChoice.CustomAmount.
const DepositCustom = "custom"

// DepositChoice is the deposit selector of the onboarding form.
type DepositChoice struct {
	Choice       string `json:"deposit"`
	CustomAmount string `json:"customDepositAmount"`
}

// Apply writes the choice into l. An empty choice keeps the current deposit.
func (d DepositChoice) Apply(l *domain.Listing) {
	switch d.Choice {
	case "":
	case DepositCustom:
		l.Deposit = "₹" + strings.TrimSpace(d.CustomAmount)
	default:
		l.Deposit = d.Choice
	}
}

// SubmitHandler persists a finalized record.
type SubmitHandler func(ctx context.Context, l *domain.Listing) error

// SubmitResult reports what the gate did. Close tells the caller to end the
// form session.
type SubmitResult struct {
	Listing  *domain.Listing
	Geocoded bool
	Close    bool
}

// FormService holds the onboarding form lifecycle on top of the draft slot.
type FormService struct {
	drafts   *draft.Service
	geocoder domain.Geocoder
	metrics  *metrics.MetricsManager
	logger   *logger.Logger
}

// NewFormService builds the form service. geocoder and m may be nil.
func NewFormService(drafts *draft.Service, geocoder domain.Geocoder, m *metrics.MetricsManager, log *logger.Logger) *FormService {
	return &FormService{
		drafts:   drafts,
		geocoder: geocoder,
		metrics:  m,
		logger:   log.Named("FormService"),
	}
}

// Open returns the record the form starts from: editData when editing,
// otherwise the stored draft, otherwise a fresh record.
func (s *FormService) Open(ctx context.Context, editData *domain.Listing) *domain.Listing {
	if editData != nil {
		rec := *editData
		return &rec
	}
	if rec, ok := s.drafts.LoadDraft(ctx); ok {
		s.logger.Debug("Resuming stored draft", zap.String("name", rec.Name))
		return rec
	}
	return domain.NewListing()
}

// Apply runs one field mutation and saves the result as the draft. The
// draft slot is shared, so editing an existing record replaces any
// new-record draft.
func (s *FormService) Apply(ctx context.Context, rec *domain.Listing, mutate func(*domain.Listing)) *domain.Listing {
	if mutate != nil {
		mutate(rec)
	}
	s.drafts.SaveDraft(ctx, rec)
	return rec
}

// Close saves rec so the session can be resumed.
func (s *FormService) Close(ctx context.Context, rec *domain.Listing) {
	s.drafts.SaveDraft(ctx, rec)
}

// Submit finalizes rec and hands it to handler. Geocoding is best effort.
// When handler fails the draft is kept and the error returned; otherwise the
// draft is cleared and the result asks the caller to close the form.
func (s *FormService) Submit(ctx context.Context, rec *domain.Listing, deposit DepositChoice, handler SubmitHandler) (*SubmitResult, error) {
	deposit.Apply(rec)
	res := &SubmitResult{Listing: rec}
	res.Geocoded = s.geocode(ctx, rec)

	if err := handler(ctx, rec); err != nil {
		s.logger.Error("Listing submission failed, draft kept", zap.String("name", rec.Name), zap.Error(err))
		return nil, err
	}
	if err := s.drafts.ClearDraft(ctx); err != nil {
		// already persisted; a stale draft only resurfaces in the form
		s.logger.Warn("Submitted listing but draft was not cleared", zap.Error(err))
	}
	res.Close = true
	return res, nil
}

func (s *FormService) geocode(ctx context.Context, rec *domain.Listing) bool {
	location := strings.TrimSpace(rec.Location)
	if location == "" || rec.Coordinates != nil || s.geocoder == nil {
		s.countGeocode("skipped")
		return false
	}
	coords, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		s.countGeocode("failed")
		s.logger.Warn("Geocoding failed, submitting without coordinates", zap.String("location", location), zap.Error(err))
		return false
	}
	rec.Coordinates = coords
	s.countGeocode("ok")
	return true
}

func (s *FormService) countGeocode(result string) {
	if s.metrics != nil {
		s.metrics.GeocodeTotal.WithLabelValues(result).Inc()
	}
}
