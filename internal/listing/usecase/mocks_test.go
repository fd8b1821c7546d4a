package usecase

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Listing), args.Get(1).(int64), args.Error(2)
}

type MockCallbackRepository struct{ mock.Mock }

func (m *MockCallbackRepository) Create(ctx context.Context, req *domain.CallbackRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockCallbackRepository) FindByID(ctx context.Context, id string) (*domain.CallbackRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CallbackRequest), args.Error(1)
}
func (m *MockCallbackRepository) List(ctx context.Context, status domain.CallbackStatus) ([]*domain.CallbackRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CallbackRequest), args.Error(1)
}
func (m *MockCallbackRepository) UpdateStatus(ctx context.Context, id string, status domain.CallbackStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockListingCache struct{ mock.Mock }

func (m *MockListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingCache) DeleteListing(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMediaStorage struct{ mock.Mock }

func (m *MockMediaStorage) Upload(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, objectKey, r, size, contentType)
	return args.String(0), args.Error(1)
}
func (m *MockMediaStorage) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, location string) (*domain.Coordinates, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinates), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyCallbackRequested(ctx context.Context, req *domain.CallbackRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
