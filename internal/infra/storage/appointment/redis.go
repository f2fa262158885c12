package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

const (
	// DefaultRedisKey ключ, под которым хранится JSON-список записей
	DefaultRedisKey = "appointments"

	defaultMaxAttempts = 10
)

// RedisStore хранит весь список одной JSON-строкой.
// Update реализован как WATCH/MULTI/EXEC: конкурирующая запись между чтением
// и фиксацией обрывает транзакцию, и мутация повторяется на свежем снимке.
type RedisStore struct {
	client      *redis.Client
	key         string
	maxAttempts int
}

// NewRedisStore создает хранилище поверх клиента Redis
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{
		client:      client,
		key:         key,
		maxAttempts: defaultMaxAttempts,
	}
}

func (s *RedisStore) ReadAll(ctx context.Context) ([]domain.Appointment, error) {
	return s.read(ctx, s.client)
}

func (s *RedisStore) WriteAll(ctx context.Context, list []domain.Appointment) error {
	payload, err := encode(list)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("%w: WriteAll - set %s: %v", ErrStorageUnavailable, s.key, err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	list, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return findByID(list, id)
}

func (s *RedisStore) FindByEmail(ctx context.Context, email string) ([]domain.Appointment, error) {
	list, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByEmail(list, email), nil
}

func (s *RedisStore) Update(ctx context.Context, fn Mutation) error {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		var mutationErr error

		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			list, err := s.read(ctx, tx)
			if err != nil {
				return err
			}

			next, changed, err := fn(list)
			if err != nil {
				mutationErr = err
				return nil
			}
			if !changed {
				return nil
			}

			payload, err := encode(next)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, s.key, payload, 0)
				return nil
			})
			return err
		}, s.key)

		switch {
		case mutationErr != nil:
			return mutationErr
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, ErrStorageUnavailable), errors.Is(err, ErrDecode):
			return err
		default:
			return fmt.Errorf("%w: Update - transaction on %s: %v", ErrStorageUnavailable, s.key, err)
		}
	}

	return fmt.Errorf("%w: Update - %d attempts on %s", ErrTooMuchContention, s.maxAttempts, s.key)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) read(ctx context.Context, c getter) ([]domain.Appointment, error) {
	raw, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Appointment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ReadAll - get %s: %v", ErrStorageUnavailable, s.key, err)
	}

	var list []domain.Appointment
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if list == nil {
		list = []domain.Appointment{}
	}
	// записи старого формата без статуса считаются активными
	for i := range list {
		if list[i].Status == "" {
			list[i].Status = domain.StatusActive
		}
	}
	return list, nil
}

func encode(list []domain.Appointment) ([]byte, error) {
	if list == nil {
		list = []domain.Appointment{}
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrDecode, err)
	}
	return payload, nil
}
