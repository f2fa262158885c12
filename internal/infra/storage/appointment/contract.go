package appointment

import (
	"context"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// Mutation изменяет свежий снимок списка записей.
// Возвращает новый список и признак изменения; при false или ошибке ничего не записывается.
// Может вызываться повторно, если снимок устарел к моменту фиксации.
type Mutation func(list []domain.Appointment) ([]domain.Appointment, bool, error)

// Store хранилище полного списка записей
type Store interface {
	ReadAll(ctx context.Context) ([]domain.Appointment, error)
	WriteAll(ctx context.Context, list []domain.Appointment) error
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Appointment, error)
	Update(ctx context.Context, fn Mutation) error
}
