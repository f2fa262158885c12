package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/psqlbuilder"
	"github.com/m04kA/barbershop-booking/pkg/ptr"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

const (
	appointmentsTable = "appointments"

	// pq код нарушения уникальности (индекс appointments_active_slot_uidx)
	uniqueViolation = "23505"

	// максимум строк в одном INSERT, чтобы не упереться в лимит параметров
	insertBatchSize = 500
)

var appointmentColumns = []string{
	"id",
	"name",
	"email",
	"service_id",
	"service_name",
	"service_price",
	"service_duration_minutes",
	"appointment_date",
	"start_time",
	"notes",
	"created_at",
	"status",
}

type appointmentRow struct {
	ID              string           `db:"id"`
	Name            string           `db:"name"`
	Email           string           `db:"email"`
	ServiceID       int64            `db:"service_id"`
	ServiceName     string           `db:"service_name"`
	ServicePrice    float64          `db:"service_price"`
	ServiceDuration int              `db:"service_duration_minutes"`
	Date            types.Date       `db:"appointment_date"`
	Time            types.TimeString `db:"start_time"`
	Notes           *string          `db:"notes"`
	CreatedAt       time.Time        `db:"created_at"`
	Status          string           `db:"status"`
}

func (r appointmentRow) toDomain() domain.Appointment {
	return domain.Appointment{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Service: domain.Service{
			ID:              r.ServiceID,
			Name:            r.ServiceName,
			Price:           r.ServicePrice,
			DurationMinutes: r.ServiceDuration,
		},
		Date:      r.Date,
		Time:      r.Time,
		Notes:     ptr.Value(r.Notes),
		CreatedAt: r.CreatedAt.UTC(),
		Status:    domain.AppointmentStatus(r.Status),
	}
}

// PostgresStore хранит записи построчно в таблице appointments.
// Уникальность активной записи на слот дополнительно гарантирует частичный
// уникальный индекс (appointment_date, start_time) WHERE status = 'active'.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore создает новый экземпляр хранилища
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ReadAll(ctx context.Context) ([]domain.Appointment, error) {
	return s.selectAll(ctx, s.db)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - build select query: %v", ErrBuildQuery, err)
	}

	var row appointmentRow
	err = sqlx.GetContext(ctx, s.db, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w: FindByID - select: %v", ErrStorageUnavailable, ErrScanRow, err)
	}

	a := row.toDomain()
	return &a, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) ([]domain.Appointment, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return []domain.Appointment{}, nil
	}

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(squirrel.Eq{"email": email}).
		OrderBy("appointment_date", "start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByEmail - build select query: %v", ErrBuildQuery, err)
	}

	return s.selectRows(ctx, s.db, query, args)
}

// WriteAll заменяет содержимое таблицы переданным списком
func (s *PostgresStore) WriteAll(ctx context.Context, list []domain.Appointment) error {
	return s.Update(ctx, func([]domain.Appointment) ([]domain.Appointment, bool, error) {
		return list, true, nil
	})
}

// Update читает таблицу под блокировкой SHARE ROW EXCLUSIVE (конкурирующие
// писатели ждут, читатели нет), применяет мутацию и записывает разницу.
func (s *PostgresStore) Update(ctx context.Context, fn Mutation) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w: Update - begin: %v", ErrStorageUnavailable, ErrTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "LOCK TABLE "+appointmentsTable+" IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		return fmt.Errorf("%w: %w: Update - lock: %v", ErrStorageUnavailable, ErrTransaction, err)
	}

	current, err := s.selectAll(ctx, tx)
	if err != nil {
		return err
	}

	next, changed, err := fn(domain.CloneAppointments(current))
	if err != nil {
		return err
	}
	if !changed {
		return tx.Commit()
	}

	if err = s.applyDiff(ctx, tx, current, next); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w: Update - commit: %v", ErrStorageUnavailable, ErrTransaction, err)
	}
	return nil
}

func (s *PostgresStore) selectAll(ctx context.Context, q sqlx.QueryerContext) ([]domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		OrderBy("appointment_date", "start_time", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReadAll - build select query: %v", ErrBuildQuery, err)
	}

	return s.selectRows(ctx, q, query, args)
}

func (s *PostgresStore) selectRows(ctx context.Context, q sqlx.QueryerContext, query string, args []interface{}) ([]domain.Appointment, error) {
	var rows []appointmentRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %w: select: %v", ErrStorageUnavailable, ErrExecQuery, err)
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// applyDiff удаляет исчезнувшие записи и upsert'ит новые и изменённые.
// Отменённые записи пишутся первыми, чтобы освобождённый слот не конфликтовал
// с записью, занимающей его в том же изменении.
func (s *PostgresStore) applyDiff(ctx context.Context, tx *sqlx.Tx, current, next []domain.Appointment) error {
	keep := make(map[string]domain.Appointment, len(next))
	for _, a := range next {
		keep[a.ID] = a
	}

	var removed []string
	for _, a := range current {
		if _, ok := keep[a.ID]; !ok {
			removed = append(removed, a.ID)
		}
	}

	before := make(map[string]domain.Appointment, len(current))
	for _, a := range current {
		before[a.ID] = a
	}

	var upserts []domain.Appointment
	for _, a := range next {
		if old, ok := before[a.ID]; ok && sameAppointment(old, a) {
			continue
		}
		upserts = append(upserts, a)
	}
	sort.SliceStable(upserts, func(i, j int) bool {
		return !upserts[i].IsActive() && upserts[j].IsActive()
	})

	if len(removed) > 0 {
		query, args, err := psqlbuilder.Delete(appointmentsTable).
			Where(squirrel.Eq{"id": removed}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: applyDiff - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w: applyDiff - delete: %v", ErrStorageUnavailable, ErrExecQuery, err)
		}
	}

	for start := 0; start < len(upserts); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(upserts) {
			end = len(upserts)
		}
		if err := s.upsert(ctx, tx, upserts[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) upsert(ctx context.Context, tx *sqlx.Tx, batch []domain.Appointment) error {
	builder := psqlbuilder.Insert(appointmentsTable).Columns(appointmentColumns...)
	for _, a := range batch {
		builder = builder.Values(
			a.ID,
			a.Name,
			NormalizeEmail(a.Email),
			a.Service.ID,
			a.Service.Name,
			a.Service.Price,
			a.Service.DurationMinutes,
			a.Date,
			a.Time,
			a.Notes,
			a.CreatedAt.UTC(),
			string(a.Status),
		)
	}

	query, args, err := builder.
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			service_id = EXCLUDED.service_id,
			service_name = EXCLUDED.service_name,
			service_price = EXCLUDED.service_price,
			service_duration_minutes = EXCLUDED.service_duration_minutes,
			appointment_date = EXCLUDED.appointment_date,
			start_time = EXCLUDED.start_time,
			notes = EXCLUDED.notes,
			status = EXCLUDED.status`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: upsert: %v", ErrSlotTaken, err)
		}
		return fmt.Errorf("%w: %w: upsert: %v", ErrStorageUnavailable, ErrExecQuery, err)
	}
	return nil
}

func sameAppointment(a, b domain.Appointment) bool {
	return a.ID == b.ID &&
		a.Name == b.Name &&
		a.Email == b.Email &&
		a.Service == b.Service &&
		a.Date.Equal(b.Date) &&
		a.Time.Equal(b.Time) &&
		a.Notes == b.Notes &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		a.Status == b.Status
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
