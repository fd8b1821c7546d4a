package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/metrics"
)

type CallbackUsecase struct {
	repo      domain.CallbackRepository
	listings  domain.ListingRepository
	publisher domain.EventPublisher
	notifier  domain.Notifier
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
	now       func() time.Time
}

// NewCallbackUsecase wires callback requests. publisher, notifier and m may
// be nil.
func NewCallbackUsecase(
	repo domain.CallbackRepository,
	listings domain.ListingRepository,
	publisher domain.EventPublisher,
	notifier domain.Notifier,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *CallbackUsecase {
	return &CallbackUsecase{
		repo:      repo,
		listings:  listings,
		publisher: publisher,
		notifier:  notifier,
		metrics:   m,
		logger:    log.Named("CallbackUsecase"),
		now:       time.Now,
	}
}

// Create stores a pending request for an existing PG and notifies operators.
// Event and email delivery failures are logged only.
func (uc *CallbackUsecase) Create(ctx context.Context, req *domain.CallbackRequest) (*domain.CallbackRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", domain.ErrInvalidListingData)
	}
	if req.Type == "" {
		req.Type = domain.CallbackTypeCallback
	}
	if req.Type != domain.CallbackTypeCallback && req.Type != domain.CallbackTypeVisit {
		return nil, fmt.Errorf("%w: unknown request type %q", domain.ErrInvalidListingData, req.Type)
	}

	pg, err := uc.listings.FindByID(ctx, req.PGID)
	if err != nil {
		return nil, err
	}
	req.PGName = pg.Name
	req.Status = domain.CallbackPending
	now := uc.now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := uc.repo.Create(ctx, req); err != nil {
		uc.logger.Error("Failed to store callback request", zap.String("pg_id", req.PGID), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("Callback request received",
		zap.String("request_id", req.ID),
		zap.String("pg_id", req.PGID),
		zap.String("type", string(req.Type)))
	if uc.metrics != nil {
		uc.metrics.CallbacksTotal.WithLabelValues(string(req.Type)).Inc()
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, domain.SubjectCallbackRequested, req); err != nil {
			uc.logger.Warn("Failed to publish callback event", zap.String("request_id", req.ID), zap.Error(err))
		}
	}
	if uc.notifier != nil {
		if err := uc.notifier.NotifyCallbackRequested(ctx, req); err != nil {
			uc.logger.Warn("Failed to send callback notification", zap.String("request_id", req.ID), zap.Error(err))
		}
	}
	return req, nil
}

// List returns requests, newest first. An empty status lists all of them.
func (uc *CallbackUsecase) List(ctx context.Context, status domain.CallbackStatus) ([]*domain.CallbackRequest, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return uc.repo.List(ctx, status)
}

func (uc *CallbackUsecase) UpdateStatus(ctx context.Context, id string, status domain.CallbackStatus) (*domain.CallbackRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		uc.logger.Warn("Failed to update callback status", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}
	return uc.repo.FindByID(ctx, id)
}
