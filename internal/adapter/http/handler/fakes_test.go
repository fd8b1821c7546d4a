package handler

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/draft"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/usecase"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

type memListings struct {
	mu   sync.Mutex
	seq  int
	rows map[string]domain.Listing
}

func newMemListings() *memListings {
	return &memListings{rows: map[string]domain.Listing{}}
}

func (m *memListings) Create(_ context.Context, l *domain.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	l.ID = fmt.Sprintf("pg-%d", m.seq)
	m.rows[l.ID] = *l
	return nil
}

func (m *memListings) Update(_ context.Context, l *domain.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[l.ID]; !ok {
		return domain.ErrListingNotFound
	}
	m.rows[l.ID] = *l
	return nil
}

func (m *memListings) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memListings) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return &l, nil
}

func (m *memListings) FindByFilter(_ context.Context, f domain.Filter) ([]*domain.Listing, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Listing
	for _, l := range m.rows {
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		l := l
		out = append(out, &l)
	}
	return out, int64(len(out)), nil
}

type memCallbacks struct {
	mu   sync.Mutex
	rows []*domain.CallbackRequest
}

func (m *memCallbacks) Create(_ context.Context, req *domain.CallbackRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.ID = fmt.Sprintf("cb-%d", len(m.rows)+1)
	m.rows = append(m.rows, req)
	return nil
}

func (m *memCallbacks) FindByID(_ context.Context, id string) (*domain.CallbackRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrCallbackNotFound
}

func (m *memCallbacks) List(_ context.Context, status domain.CallbackStatus) ([]*domain.CallbackRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.CallbackRequest
	for _, r := range m.rows {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memCallbacks) UpdateStatus(ctx context.Context, id string, status domain.CallbackStatus) error {
	r, err := m.FindByID(ctx, id)
	if err != nil {
		return err
	}
	r.Status = status
	return nil
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "http://media.test/shelterly/" + key
	s.objects[url] = data
	return url, nil
}

func (s *memStorage) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, url)
	return nil
}

type stubGeocoder struct{ coords *domain.Coordinates }

func (g stubGeocoder) Geocode(context.Context, string) (*domain.Coordinates, error) {
	if g.coords == nil {
		return nil, domain.ErrGeocodeNotFound
	}
	return g.coords, nil
}

type testEnv struct {
	h         *Handler
	listings  *memListings
	callbacks *memCallbacks
	storage   *memStorage
	drafts    *draft.Service
}

func newTestEnv() *testEnv {
	log := logger.NewNop()
	env := &testEnv{
		listings:  newMemListings(),
		callbacks: &memCallbacks{},
		storage:   &memStorage{objects: map[string][]byte{}},
	}
	env.drafts = draft.NewService(draft.NewMemoryStore(), log, nil)

	listings := usecase.NewListingUsecase(env.listings, nil, env.storage, nil, nil, log)
	env.h = New(Deps{
		Listings:  listings,
		Media:     usecase.NewMediaUsecase(env.storage, listings, log),
		Bulk:      usecase.NewBulkUsecase(listings, 5, 2, log),
		Form:      usecase.NewFormService(env.drafts, stubGeocoder{coords: &domain.Coordinates{Lat: 12.97, Lng: 77.59}}, nil, log),
		Drafts:    env.drafts,
		Callbacks: usecase.NewCallbackUsecase(env.callbacks, env.listings, nil, nil, nil, log),
	}, log)
	return env
}
