package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/logger"
)

func TestNewService_DefaultCatalog(t *testing.T) {
	svc, err := NewService(nil, logger.Nop())
	require.NoError(t, err)

	list := svc.List()
	require.Len(t, list, 6)
	assert.Equal(t, "Herren Haarschnitt", list[0].Name)
	assert.Equal(t, "15€", list[0].PriceLabel)
	assert.Equal(t, 30, list[0].DurationMinutes)
}

func TestNewService_RejectsInvalidCatalog(t *testing.T) {
	_, err := NewService([]domain.Service{
		{ID: 1, Name: "A", Price: 10, DurationMinutes: 30},
		{ID: 1, Name: "B", Price: 10, DurationMinutes: 30},
	}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = NewService([]domain.Service{{ID: 2, Name: "", Price: 10, DurationMinutes: 30}}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = NewService([]domain.Service{{ID: 3, Name: "C", Price: 10}}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestResolve(t *testing.T) {
	svc, err := NewService(nil, logger.Nop())
	require.NoError(t, err)

	got, err := svc.Resolve(5, "")
	require.NoError(t, err)
	assert.Equal(t, "Bart Styling", got.Name)
	assert.Equal(t, 12.0, got.Price)

	got, err = svc.Resolve(5, " bart styling ")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)

	_, err = svc.Resolve(5, "Gesichtsreinigung")
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.Resolve(42, "")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestFormatPrice(t *testing.T) {
	svc, err := NewService([]domain.Service{{ID: 1, Name: "X", Price: 12.5, DurationMinutes: 30}}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "12,50€", svc.List()[0].PriceLabel)
}
