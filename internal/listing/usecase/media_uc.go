package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

const mediaKeyPrefix = "pg-listings"

// DraftFolder is the key segment used for media uploaded before the listing
// has an id.
const DraftFolder = "draft"

type MediaKind string

const (
	MediaPhotos     MediaKind = "photos"
	MediaVideos     MediaKind = "videos"
	MediaThumbnails MediaKind = "thumbnails"
)

// MediaFile is one uploaded file as received from a client.
type MediaFile struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MediaUsecase struct {
	storage  domain.MediaStorage
	listings *ListingUsecase
	logger   *logger.Logger
}

func NewMediaUsecase(storage domain.MediaStorage, listings *ListingUsecase, log *logger.Logger) *MediaUsecase {
	return &MediaUsecase{
		storage:  storage,
		listings: listings,
		logger:   log.Named("MediaUsecase"),
	}
}

// ObjectKey builds "pg-listings/<folder>/<kind>/<uuid><ext>".
func ObjectKey(folder string, kind MediaKind, fileName string) string {
	if folder == "" {
		folder = DraftFolder
	}
	ext := strings.ToLower(path.Ext(fileName))
	return path.Join(mediaKeyPrefix, folder, string(kind), uuid.NewString()+ext)
}

// Store uploads one file and returns its public URL.
func (uc *MediaUsecase) Store(ctx context.Context, folder string, kind MediaKind, f MediaFile) (string, error) {
	if f.Body == nil {
		return "", fmt.Errorf("%w: empty upload", domain.ErrInvalidListingData)
	}
	key := ObjectKey(folder, kind, f.FileName)
	url, err := uc.storage.Upload(ctx, key, f.Body, f.Size, f.ContentType)
	if err != nil {
		uc.logger.Error("Media upload failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	uc.logger.Info("Media uploaded", zap.String("key", key), zap.Int64("size", f.Size))
	return url, nil
}

// Release deletes the object behind url. URLs that do not point into the
// media bucket are left alone.
func (uc *MediaUsecase) Release(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	err := uc.storage.Delete(ctx, url)
	if errors.Is(err, domain.ErrUnrecognizedMediaURL) {
		uc.logger.Debug("Media URL not owned by storage, skipping release", zap.String("url", url))
		return nil
	}
	return err
}

// UploadPhoto uploads a photo and appends it to the listing.
func (uc *MediaUsecase) UploadPhoto(ctx context.Context, listingID string, f MediaFile, category domain.MediaCategory, caption string) (*domain.Listing, error) {
	listing, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	url, err := uc.Store(ctx, listingID, MediaPhotos, f)
	if err != nil {
		return nil, err
	}
	listing.Photos = append(listing.Photos, domain.Photo{URL: url, Category: CategoryOrOther(category), Caption: caption})

	updated, err := uc.listings.Update(ctx, listing)
	if err != nil {
		uc.discard(ctx, url)
		return nil, err
	}
	return updated, nil
}

// StoreVideo uploads a video and an optional thumbnail under folder and
// returns v with their URLs filled in. Nothing is left stored on failure.
func (uc *MediaUsecase) StoreVideo(ctx context.Context, folder string, video MediaFile, thumbnail *MediaFile, v domain.Video) (domain.Video, error) {
	var err error
	v.VideoURL, err = uc.Store(ctx, folder, MediaVideos, video)
	if err != nil {
		return domain.Video{}, err
	}
	v.ThumbnailURL = ""
	if thumbnail != nil {
		v.ThumbnailURL, err = uc.Store(ctx, folder, MediaThumbnails, *thumbnail)
		if err != nil {
			uc.discard(ctx, v.VideoURL)
			return domain.Video{}, err
		}
	}
	v.Category = CategoryOrOther(v.Category)
	return v, nil
}

// UploadVideo uploads a video and an optional thumbnail and appends them to
// the listing.
func (uc *MediaUsecase) UploadVideo(ctx context.Context, listingID string, video MediaFile, thumbnail *MediaFile, v domain.Video) (*domain.Listing, error) {
	listing, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	v, err = uc.StoreVideo(ctx, listingID, video, thumbnail, v)
	if err != nil {
		return nil, err
	}
	listing.Videos = append(listing.Videos, v)

	updated, err := uc.listings.Update(ctx, listing)
	if err != nil {
		uc.discard(ctx, v.VideoURL)
		uc.discard(ctx, v.ThumbnailURL)
		return nil, err
	}
	return updated, nil
}

// RemovePhoto releases the stored object first and only then drops the
// photo at index from the listing, so a storage failure leaves the listing
// untouched.
func (uc *MediaUsecase) RemovePhoto(ctx context.Context, listingID string, index int) (*domain.Listing, error) {
	listing, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(listing.Photos) {
		return nil, fmt.Errorf("%w: photo %d", domain.ErrMediaNotFound, index)
	}
	if err := uc.Release(ctx, listing.Photos[index].URL); err != nil {
		uc.logger.Error("Failed to release photo", zap.String("listing_id", listingID), zap.Int("index", index), zap.Error(err))
		return nil, err
	}
	listing.Photos = append(listing.Photos[:index:index], listing.Photos[index+1:]...)
	return uc.listings.update(ctx, listing, false)
}

func (uc *MediaUsecase) RemoveVideo(ctx context.Context, listingID string, index int) (*domain.Listing, error) {
	listing, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(listing.Videos) {
		return nil, fmt.Errorf("%w: video %d", domain.ErrMediaNotFound, index)
	}
	v := listing.Videos[index]
	if err := uc.Release(ctx, v.VideoURL); err != nil {
		uc.logger.Error("Failed to release video", zap.String("listing_id", listingID), zap.Int("index", index), zap.Error(err))
		return nil, err
	}
	if err := uc.Release(ctx, v.ThumbnailURL); err != nil {
		// the video itself is gone; keep going so the record does not point at it
		uc.logger.Warn("Failed to release video thumbnail", zap.String("listing_id", listingID), zap.Error(err))
	}
	listing.Videos = append(listing.Videos[:index:index], listing.Videos[index+1:]...)
	return uc.listings.update(ctx, listing, false)
}

// RemoveDraftPhoto drops the photo at index from an unsubmitted form
// record and releases its object. An object the stored listing still uses
// is kept; Update releases it if the edit is submitted without it.
func (uc *MediaUsecase) RemoveDraftPhoto(ctx context.Context, rec *domain.Listing, index int) error {
	if index < 0 || index >= len(rec.Photos) {
		return fmt.Errorf("%w: photo %d", domain.ErrMediaNotFound, index)
	}
	if err := uc.releaseUnheld(ctx, rec.ID, rec.Photos[index].URL); err != nil {
		uc.logger.Error("Failed to release draft photo", zap.Int("index", index), zap.Error(err))
		return err
	}
	rec.Photos = append(rec.Photos[:index:index], rec.Photos[index+1:]...)
	return nil
}

// RemoveDraftVideo is RemoveDraftPhoto for videos and their thumbnails.
func (uc *MediaUsecase) RemoveDraftVideo(ctx context.Context, rec *domain.Listing, index int) error {
	if index < 0 || index >= len(rec.Videos) {
		return fmt.Errorf("%w: video %d", domain.ErrMediaNotFound, index)
	}
	v := rec.Videos[index]
	if err := uc.releaseUnheld(ctx, rec.ID, v.VideoURL); err != nil {
		uc.logger.Error("Failed to release draft video", zap.Int("index", index), zap.Error(err))
		return err
	}
	if err := uc.releaseUnheld(ctx, rec.ID, v.ThumbnailURL); err != nil {
		uc.logger.Warn("Failed to release draft video thumbnail", zap.Error(err))
	}
	rec.Videos = append(rec.Videos[:index:index], rec.Videos[index+1:]...)
	return nil
}

// ReleaseDropped releases media that before references and after, a later
// state of the same form record, no longer does. Failures are logged.
func (uc *MediaUsecase) ReleaseDropped(ctx context.Context, before, after *domain.Listing) {
	if before == nil || after == nil || before.ID != after.ID {
		return
	}
	for _, url := range droppedMediaURLs(before, after) {
		if err := uc.releaseUnheld(ctx, after.ID, url); err != nil {
			uc.logger.Warn("Failed to release media dropped from draft", zap.String("url", url), zap.Error(err))
		}
	}
}

// releaseUnheld releases url unless the stored listing id still uses it.
func (uc *MediaUsecase) releaseUnheld(ctx context.Context, id, url string) error {
	if url == "" {
		return nil
	}
	if id != "" {
		stored, err := uc.listings.GetByID(ctx, id)
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
		case err != nil:
			return err
		default:
			for _, held := range mediaURLs(stored) {
				if held == url {
					return nil
				}
			}
		}
	}
	return uc.Release(ctx, url)
}

// discard removes an object uploaded for a change that was not persisted.
func (uc *MediaUsecase) discard(ctx context.Context, url string) {
	if err := uc.Release(ctx, url); err != nil {
		uc.logger.Warn("Failed to discard orphaned media", zap.String("url", url), zap.Error(err))
	}
}

// CategoryOrOther maps unknown media categories to "other".
func CategoryOrOther(c domain.MediaCategory) domain.MediaCategory {
	switch c {
	case domain.CategoryRoom, domain.CategoryWashroom, domain.CategoryExterior,
		domain.CategoryCommon, domain.CategoryKitchen:
		return c
	}
	return domain.CategoryOther
}
