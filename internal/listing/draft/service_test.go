package draft

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

type MockStore struct{ mock.Mock }

func (m *MockStore) Save(ctx context.Context, data []byte) error {
	return m.Called(ctx, data).Error(0)
}

func (m *MockStore) Load(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type countingFailures struct{ n int }

func (c *countingFailures) Inc() { c.n++ }

func sampleListing() *domain.Listing {
	l := domain.NewListing()
	l.Name = "Green Nest"
	l.Location = "Koramangala"
	l.Coordinates = &domain.Coordinates{Lat: 12.93, Lng: 77.62}
	l.Sharing.Two = domain.SharingTier{Available: true, Price: 9000}
	l.AdditionalCharges = []domain.AdditionalCharge{{Name: "Electricity", Amount: 800, Required: true}}
	l.Photos = []domain.Photo{{URL: "http://minio/b/k.jpg", Category: domain.CategoryRoom, Caption: "Bed"}}
	l.Videos = []domain.Video{{VideoURL: "http://minio/b/v.mp4", ThumbnailURL: "http://minio/b/t.jpg", Category: domain.CategoryExterior, Duration: 12.5}}
	l.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return l
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), logger.NewNop(), nil)

	rec := sampleListing()
	svc.SaveDraft(ctx, rec)

	got, ok := svc.LoadDraft(ctx)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestService_AbsentBeforeSaveAndAfterClear(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), logger.NewNop(), nil)

	_, ok := svc.LoadDraft(ctx)
	assert.False(t, ok)

	svc.SaveDraft(ctx, sampleListing())
	require.NoError(t, svc.ClearDraft(ctx))

	_, ok = svc.LoadDraft(ctx)
	assert.False(t, ok)
}

func TestService_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), logger.NewNop(), nil)

	first := sampleListing()
	svc.SaveDraft(ctx, first)

	other := domain.NewListing()
	other.ID = "64f000000000000000000001"
	other.Name = "Existing PG under edit"
	svc.SaveDraft(ctx, other)

	got, ok := svc.LoadDraft(ctx)
	require.True(t, ok)
	assert.Equal(t, "Existing PG under edit", got.Name)
	assert.Equal(t, other.ID, got.ID)
}

func TestService_SaveFailureIsSwallowed(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("quota exceeded")).Once()
	failures := &countingFailures{}
	svc := NewService(store, logger.NewNop(), failures)

	assert.NotPanics(t, func() { svc.SaveDraft(context.Background(), sampleListing()) })
	assert.Equal(t, 1, failures.n)
	store.AssertExpectations(t)
}

func TestService_CorruptOrUnreadableDraftIsAbsent(t *testing.T) {
	store := new(MockStore)
	store.On("Load", mock.Anything).Return([]byte("{not json"), nil).Once()
	store.On("Load", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	svc := NewService(store, logger.NewNop(), nil)

	_, ok := svc.LoadDraft(context.Background())
	assert.False(t, ok)
	_, ok = svc.LoadDraft(context.Background())
	assert.False(t, ok)
	store.AssertExpectations(t)
}

func TestService_ClearErrorPropagates(t *testing.T) {
	store := new(MockStore)
	store.On("Clear", mock.Anything).Return(errors.New("down")).Once()
	svc := NewService(store, logger.NewNop(), nil)

	assert.Error(t, svc.ClearDraft(context.Background()))
}

func TestService_DraftView(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), logger.NewNop(), nil)
	clock := time.UnixMilli(1760000000123)
	svc.now = func() time.Time { return clock }

	_, ok := svc.DraftView(ctx)
	assert.False(t, ok)

	svc.SaveDraft(ctx, sampleListing())
	clock = clock.Add(5 * time.Second)
	view, ok := svc.DraftView(ctx)
	require.True(t, ok)
	assert.Equal(t, "draft-1760000000123", view.ID)
	assert.Equal(t, domain.StatusDraft, view.Status)

	clock = clock.Add(time.Minute)
	again, ok := svc.DraftView(ctx)
	require.True(t, ok)
	assert.Equal(t, view.ID, again.ID, "id is derived from the save, not the read")

	kept, _ := svc.LoadDraft(ctx)
	assert.Equal(t, domain.StatusInitial, kept.Status)

	svc.SaveDraft(ctx, kept)
	resaved, ok := svc.DraftView(ctx)
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("draft-%d", clock.UnixMilli()), resaved.ID)
}

func TestService_StoredValueWithoutListingIsAbsent(t *testing.T) {
	store := new(MockStore)
	store.On("Load", mock.Anything).Return([]byte(`{"savedAt":1}`), nil).Once()
	svc := NewService(store, logger.NewNop(), nil)

	_, ok := svc.LoadDraft(context.Background())
	assert.False(t, ok)
	store.AssertExpectations(t)
}
