package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

const listCacheKey = "appointments:all"

// CachedStore кэширует ReadAll на короткое время.
// Кэш только для чтения: WriteAll и Update всегда идут в backend и сбрасывают кэш,
// мутации получают снимок напрямую из backend.
// Поколение растёт при каждой записи; снимок, прочитанный до записи, в кэш не попадает.
type CachedStore struct {
	backend Store
	cache   *cache.Cache
	ttl     time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewCachedStore оборачивает backend. При ttl <= 0 возвращается сам backend.
func NewCachedStore(backend Store, ttl time.Duration) Store {
	if ttl <= 0 {
		return backend
	}
	return &CachedStore{
		backend: backend,
		cache:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

func (s *CachedStore) ReadAll(ctx context.Context) ([]domain.Appointment, error) {
	if cached, found := s.cache.Get(listCacheKey); found {
		return domain.CloneAppointments(cached.([]domain.Appointment)), nil
	}

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	list, err := s.backend.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.generation == gen {
		s.cache.Set(listCacheKey, domain.CloneAppointments(list), s.ttl)
	}
	s.mu.Unlock()
	return list, nil
}

func (s *CachedStore) WriteAll(ctx context.Context, list []domain.Appointment) error {
	defer s.Invalidate()
	return s.backend.WriteAll(ctx, list)
}

func (s *CachedStore) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	list, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return findByID(list, id)
}

func (s *CachedStore) FindByEmail(ctx context.Context, email string) ([]domain.Appointment, error) {
	list, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByEmail(list, email), nil
}

func (s *CachedStore) Update(ctx context.Context, fn Mutation) error {
	defer s.Invalidate()
	return s.backend.Update(ctx, fn)
}

// Invalidate сбрасывает закэшированный список
func (s *CachedStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.cache.Delete(listCacheKey)
}
