package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

func sample(id, date string, t types.TimeString, email string) domain.Appointment {
	return domain.NewAppointment(
		id,
		"Max Mustermann",
		email,
		domain.DefaultServices[0],
		types.MustParseDate(date),
		t,
		"",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ""), mr
}

func backends(t *testing.T) map[string]Store {
	redisStore, _ := newRedisStore(t)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
		"cached": NewCachedStore(NewMemoryStore(), time.Minute),
	}
}

func TestStore_ReadWriteLookup(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			list, err := store.ReadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)

			require.NoError(t, store.WriteAll(ctx, []domain.Appointment{
				sample("a", "2025-06-02", "10:00", "max@example.com"),
				sample("b", "2025-06-02", "10:30", "erika@example.com"),
				sample("c", "2025-06-03", "09:00", "max@example.com"),
			}))

			list, err = store.ReadAll(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 3)

			found, err := store.FindByID(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "erika@example.com", found.Email)
			assert.Equal(t, types.MustParseDate("2025-06-02"), found.Date)
			assert.Equal(t, domain.StatusActive, found.Status)

			_, err = store.FindByID(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			byEmail, err := store.FindByEmail(ctx, "  MAX@example.com ")
			require.NoError(t, err)
			assert.Len(t, byEmail, 2)

			byEmail, err = store.FindByEmail(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, byEmail)
		})
	}
}

func TestStore_UpdateCommitsOnlyWhenChanged(t *testing.T) {
	errBoom := errors.New("boom")

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.WriteAll(ctx, []domain.Appointment{sample("a", "2025-06-02", "10:00", "max@example.com")}))

			err := store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
				list[0].Name = "ignored"
				return list, false, nil
			})
			require.NoError(t, err)

			err = store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
				list[0].Name = "ignored"
				return list, true, errBoom
			})
			assert.ErrorIs(t, err, errBoom)

			found, err := store.FindByID(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "Max Mustermann", found.Name)

			err = store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
				list[0].Status = domain.StatusCancelled
				return list, true, nil
			})
			require.NoError(t, err)

			found, err = store.FindByID(ctx, "a")
			require.NoError(t, err)
			assert.True(t, found.IsCancelled())
		})
	}
}

func TestStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const workers = 8

			var wg sync.WaitGroup
			errs := make(chan error, workers)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs <- store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
						return append(list, sample(fmt.Sprintf("id-%d", i), "2025-06-02", "10:00", "max@example.com")), true, nil
					})
				}(i)
			}
			wg.Wait()
			close(errs)

			committed := 0
			for err := range errs {
				if err == nil {
					committed++
					continue
				}
				assert.ErrorIs(t, err, ErrTooMuchContention)
			}

			list, err := store.ReadAll(ctx)
			require.NoError(t, err)
			assert.Len(t, list, committed, "every committed mutation must be visible, none lost")
		})
	}
}

func TestRedisStore_LegacyRecordsDefaultToActive(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set(DefaultRedisKey, `[{"id":"x","name":"Max","email":"max@example.com","date":"2025-06-02","time":"10:00"}]`))

	list, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusActive, list[0].Status)
}

func TestRedisStore_DecodeAndUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set(DefaultRedisKey, "not json"))

	_, err := store.ReadAll(context.Background())
	assert.ErrorIs(t, err, ErrDecode)

	mr.Close()
	_, err = store.ReadAll(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	err = store.Update(context.Background(), func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
		return list, true, nil
	})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

type countingStore struct {
	*MemoryStore
	reads int
}

func (s *countingStore) ReadAll(ctx context.Context) ([]domain.Appointment, error) {
	s.reads++
	return s.MemoryStore.ReadAll(ctx)
}

func TestCachedStore_InvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{MemoryStore: NewMemoryStore(sample("a", "2025-06-02", "10:00", "max@example.com"))}
	store := NewCachedStore(backend, time.Minute)

	_, err := store.ReadAll(ctx)
	require.NoError(t, err)
	_, err = store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.reads)

	require.NoError(t, store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
		return append(list, sample("b", "2025-06-02", "10:30", "erika@example.com")), true, nil
	}))

	list, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, backend.reads)
}

func TestCachedStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewCachedStore(NewMemoryStore(sample("a", "2025-06-02", "10:00", "max@example.com")), time.Minute)

	list, err := store.ReadAll(ctx)
	require.NoError(t, err)
	list[0].Status = domain.StatusCancelled

	again, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.True(t, again[0].IsActive())
}

func TestNewCachedStore_DisabledReturnsBackend(t *testing.T) {
	backend := NewMemoryStore()
	assert.Same(t, backend, NewCachedStore(backend, 0))
}

type pausingStore struct {
	*MemoryStore
	once    sync.Once
	taken   chan struct{}
	release chan struct{}
}

func (s *pausingStore) ReadAll(ctx context.Context) ([]domain.Appointment, error) {
	list, err := s.MemoryStore.ReadAll(ctx)
	s.once.Do(func() {
		close(s.taken)
		<-s.release
	})
	return list, err
}

func TestCachedStore_StaleReadDoesNotOverwriteInvalidation(t *testing.T) {
	ctx := context.Background()
	backend := &pausingStore{
		MemoryStore: NewMemoryStore(),
		taken:       make(chan struct{}),
		release:     make(chan struct{}),
	}
	store := NewCachedStore(backend, time.Minute)

	done := make(chan struct{})
	go func() {
		defer close(done)
		list, err := store.ReadAll(ctx)
		assert.NoError(t, err)
		assert.Empty(t, list)
	}()

	<-backend.taken
	require.NoError(t, store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
		return append(list, sample("a", "2025-06-02", "10:00", "max@example.com")), true, nil
	}))
	close(backend.release)
	<-done

	list, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
