package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListingUsecase struct {
	repo      domain.ListingRepository
	cache     domain.ListingCache
	storage   domain.MediaStorage
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
	now       func() time.Time
}

// NewListingUsecase wires the listing operations. cache, publisher and
// metrics may be nil.
func NewListingUsecase(
	repo domain.ListingRepository,
	cache domain.ListingCache,
	storage domain.MediaStorage,
	publisher domain.EventPublisher,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		cache:     cache,
		storage:   storage,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("ListingUsecase"),
		now:       time.Now,
	}
}

// normalize fills the defaults a persisted listing must always carry.
func normalize(l *domain.Listing) error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidListingData)
	}
	if l.Status == "" {
		l.Status = domain.StatusInitial
	}
	if !l.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, l.Status)
	}
	if l.Gender == "" {
		l.Gender = domain.GenderUnisex
	}
	if l.Deposit == "" {
		l.Deposit = domain.DefaultDeposit
	}
	if l.Photos == nil {
		l.Photos = []domain.Photo{}
	}
	if l.Videos == nil {
		l.Videos = []domain.Video{}
	}
	if l.AdditionalCharges == nil {
		l.AdditionalCharges = []domain.AdditionalCharge{}
	}
	return nil
}

func (uc *ListingUsecase) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	uc.logger.Info("Creating listing", zap.String("name", listing.Name))

	if err := normalize(listing); err != nil {
		uc.logger.Warn("Rejected listing data", zap.Error(err))
		return nil, err
	}
	now := uc.now()
	listing.ID = ""
	listing.CreatedAt = now
	listing.UpdatedAt = now

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("Failed to create listing", zap.String("name", listing.Name), zap.Error(err))
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.ListingsCreatedTotal.Inc()
	}
	uc.publish(ctx, domain.SubjectListingCreated, listingEvent(listing))
	return listing, nil
}

// Update replaces a stored listing. CreatedAt is kept from the stored copy.
// Media the stored copy referenced and the new one no longer does are
// released once the write succeeds.
func (uc *ListingUsecase) Update(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	return uc.update(ctx, listing, true)
}

// update writes listing. releaseDropped is false for callers that already
// released what they removed.
func (uc *ListingUsecase) update(ctx context.Context, listing *domain.Listing, releaseDropped bool) (*domain.Listing, error) {
	uc.logger.Info("Updating listing", zap.String("listing_id", listing.ID))

	existing, err := uc.repo.FindByID(ctx, listing.ID)
	if err != nil {
		uc.logger.Warn("Failed to find listing for update", zap.String("listing_id", listing.ID), zap.Error(err))
		return nil, err
	}
	if err := normalize(listing); err != nil {
		return nil, err
	}
	var dropped []string
	if releaseDropped {
		dropped = droppedMediaURLs(existing, listing)
	}
	listing.CreatedAt = existing.CreatedAt
	listing.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to update listing", zap.String("listing_id", listing.ID), zap.Error(err))
		return nil, err
	}
	uc.releaseMedia(ctx, listing.ID, dropped)
	uc.invalidate(ctx, listing.ID)
	if uc.metrics != nil {
		uc.metrics.ListingUpdatesTotal.Inc()
	}
	uc.publish(ctx, domain.SubjectListingUpdated, listingEvent(listing))
	return listing, nil
}

// Delete removes a listing and releases its media objects. Media release
// failures are logged and do not block the delete.
func (uc *ListingUsecase) Delete(ctx context.Context, id string) error {
	uc.logger.Info("Deleting listing", zap.String("listing_id", id))

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to find listing for delete", zap.String("listing_id", id), zap.Error(err))
		return err
	}
	uc.releaseMedia(ctx, id, mediaURLs(listing))
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return err
	}
	uc.invalidate(ctx, id)
	if uc.metrics != nil {
		uc.metrics.ListingDeletesTotal.Inc()
	}
	uc.publish(ctx, domain.SubjectListingDeleted, map[string]string{"id": id})
	return nil
}

// GetByID reads through the cache. Cache errors degrade to a repository read.
func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		switch {
		case err != nil:
			uc.logger.Warn("Listing cache read failed", zap.String("listing_id", id), zap.Error(err))
		case cached != nil:
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Error("Failed to fetch listing", zap.String("listing_id", id), zap.Error(err))
		}
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("Listing cache write failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

// PageFilter applies the default page and clamps the page size.
func PageFilter(filter domain.Filter) domain.Filter {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return filter
}

func (uc *ListingUsecase) Search(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	filter = PageFilter(filter)
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, filter.Status)
	}
	listings, total, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to search listings", zap.String("filter", fmt.Sprintf("%+v", filter)), zap.Error(err))
		return nil, 0, err
	}
	return listings, total, nil
}

// UpdateStatus moves a listing to status. Transitions are not checked: the
// workflow is driven by operators.
func (uc *ListingUsecase) UpdateStatus(ctx context.Context, id string, status domain.ListingStatus) (*domain.Listing, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := listing.Status
	listing.Status = status
	listing.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to update listing status", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, id)
	uc.publish(ctx, domain.SubjectListingStatusChanged, map[string]string{
		"id":   id,
		"from": string(previous),
		"to":   string(status),
	})
	return listing, nil
}

// releaseMedia deletes stored objects. Failures are logged and never undo
// the record change that orphaned them.
func (uc *ListingUsecase) releaseMedia(ctx context.Context, id string, urls []string) {
	for _, url := range urls {
		if err := uc.storage.Delete(ctx, url); err != nil && !errors.Is(err, domain.ErrUnrecognizedMediaURL) {
			uc.logger.Warn("Failed to release listing media", zap.String("listing_id", id), zap.String("url", url), zap.Error(err))
		}
	}
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warn("Listing cache invalidation failed", zap.String("listing_id", id), zap.Error(err))
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, payload interface{}) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, subject, payload); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

type listingEventPayload struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Status   domain.ListingStatus `json:"status"`
	Location string               `json:"location"`
	MinPrice float64              `json:"minPrice,omitempty"`
}

func listingEvent(l *domain.Listing) listingEventPayload {
	p := listingEventPayload{ID: l.ID, Name: l.Name, Status: l.Status, Location: l.Location}
	if price, ok := l.Sharing.MinPrice(); ok {
		p.MinPrice = price
	}
	return p
}

func mediaURLs(l *domain.Listing) []string {
	urls := make([]string, 0, len(l.Photos)+2*len(l.Videos))
	for _, p := range l.Photos {
		urls = append(urls, p.URL)
	}
	for _, v := range l.Videos {
		urls = append(urls, v.VideoURL)
		if v.ThumbnailURL != "" {
			urls = append(urls, v.ThumbnailURL)
		}
	}
	return urls
}

// droppedMediaURLs lists the media URLs before references and after does not.
func droppedMediaURLs(before, after *domain.Listing) []string {
	kept := make(map[string]struct{})
	for _, url := range mediaURLs(after) {
		kept[url] = struct{}{}
	}
	var dropped []string
	for _, url := range mediaURLs(before) {
		if _, ok := kept[url]; ok || url == "" {
			continue
		}
		kept[url] = struct{}{}
		dropped = append(dropped, url)
	}
	return dropped
}
