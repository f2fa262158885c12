package appointment

import (
	"context"
	"sync"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// MemoryStore хранилище в памяти процесса (локальная разработка, тесты)
type MemoryStore struct {
	mu    sync.Mutex
	items []domain.Appointment
}

// NewMemoryStore создает хранилище с начальным содержимым
func NewMemoryStore(initial ...domain.Appointment) *MemoryStore {
	return &MemoryStore{items: domain.CloneAppointments(initial)}
}

func (s *MemoryStore) ReadAll(ctx context.Context) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneAppointments(s.items), nil
}

func (s *MemoryStore) WriteAll(ctx context.Context, list []domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = domain.CloneAppointments(list)
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findByID(s.items, id)
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterByEmail(s.items, email), nil
}

// Update выполняет мутацию под мьютексом, поэтому она не может устареть
func (s *MemoryStore) Update(ctx context.Context, fn Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	next, changed, err := fn(domain.CloneAppointments(s.items))
	if err != nil {
		return err
	}
	if changed {
		s.items = domain.CloneAppointments(next)
	}
	return nil
}
