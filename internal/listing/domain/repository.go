package domain

import (
	"context"
	"io"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, int64, error)
}

type CallbackRepository interface {
	Create(ctx context.Context, req *CallbackRequest) error
	FindByID(ctx context.Context, id string) (*CallbackRequest, error)
	List(ctx context.Context, status CallbackStatus) ([]*CallbackRequest, error)
	UpdateStatus(ctx context.Context, id string, status CallbackStatus) error
}

// ListingCache is a read-through cache in front of ListingRepository.
// Get returns (nil, nil) on a miss.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*Listing, error)
	SetListing(ctx context.Context, listing *Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// MediaStorage stores listing photos and videos and returns public URLs.
type MediaStorage interface {
	Upload(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) (string, error)
	// Delete releases the object behind url. It returns
	// ErrUnrecognizedMediaURL when url does not point into the bucket and
	// nil when the object is already gone.
	Delete(ctx context.Context, url string) error
}

// Geocoder resolves a free-text location into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*Coordinates, error)
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Notifier delivers operator notifications.
type Notifier interface {
	NotifyCallbackRequested(ctx context.Context, req *CallbackRequest) error
}

// Event subjects.
const (
	SubjectListingCreated       = "pg.listing.created"
	SubjectListingUpdated       = "pg.listing.updated"
	SubjectListingDeleted       = "pg.listing.deleted"
	SubjectListingStatusChanged = "pg.listing.status_changed"
	SubjectBulkImported         = "pg.listing.bulk_imported"
	SubjectCallbackRequested    = "pg.callback.requested"
)
