package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

// SaveFailureCounter is notified of swallowed save errors.
type SaveFailureCounter interface {
	Inc()
}

// Service wraps a Store with the draft's error policy: saving never fails
// the caller and a missing or corrupt slot reads as "no draft".
type Service struct {
	store    Store
	logger   *logger.Logger
	failures SaveFailureCounter
	now      func() time.Time
}

func NewService(store Store, log *logger.Logger, failures SaveFailureCounter) *Service {
	return &Service{
		store:    store,
		logger:   log.Named("draft"),
		failures: failures,
		now:      time.Now,
	}
}

// stored is the value kept in the slot. SavedAt is unix millis.
type stored struct {
	SavedAt int64           `json:"savedAt"`
	Listing *domain.Listing `json:"listing"`
}

// SaveDraft overwrites the slot with rec, stamped with the save time.
// Errors are logged and dropped so editing can continue.
func (s *Service) SaveDraft(ctx context.Context, rec *domain.Listing) {
	if rec == nil {
		return
	}
	data, err := json.Marshal(stored{SavedAt: s.now().UnixMilli(), Listing: rec})
	if err != nil {
		s.saveFailed("encode", err)
		return
	}
	switch err := s.store.Save(ctx, data); {
	case err == nil:
		s.logger.Debug("Draft saved", zap.Int("bytes", len(data)))
	default:
		s.saveFailed("store", err)
	}
}

func (s *Service) saveFailed(stage string, err error) {
	if s.failures != nil {
		s.failures.Inc()
	}
	s.logger.Warn("Draft save failed, continuing", zap.String("stage", stage), zap.Error(err))
}

// LoadDraft returns the stored draft. ok is false when nothing is stored,
// the store cannot be read, or the stored value does not decode.
func (s *Service) LoadDraft(ctx context.Context) (rec *domain.Listing, ok bool) {
	v, ok := s.load(ctx)
	if !ok {
		return nil, false
	}
	return v.Listing, true
}

func (s *Service) load(ctx context.Context) (*stored, bool) {
	data, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, ErrNoDraft):
		return nil, false
	case err != nil:
		s.logger.Warn("Draft load failed, treating as absent", zap.Error(err))
		return nil, false
	}

	var v stored
	if err := json.Unmarshal(data, &v); err != nil || v.Listing == nil {
		s.logger.Warn("Stored draft is not a listing, treating as absent", zap.Error(err))
		return nil, false
	}
	return &v, true
}

// ClearDraft empties the slot.
func (s *Service) ClearDraft(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("Draft clear failed", zap.Error(err))
		return fmt.Errorf("draft: clear: %w", err)
	}
	return nil
}

// DraftView returns the draft as listing tables show it: status "draft" and
// the id "draft-<unix millis of the last save>", stable until the next save.
func (s *Service) DraftView(ctx context.Context) (*domain.Listing, bool) {
	v, ok := s.load(ctx)
	if !ok {
		return nil, false
	}
	rec := v.Listing
	rec.ID = fmt.Sprintf("draft-%d", v.SavedAt)
	rec.Status = domain.StatusDraft
	return rec, true
}
