package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/calendar"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/appointment"
	"github.com/m04kA/barbershop-booking/internal/service/appointments/models"
	"github.com/m04kA/barbershop-booking/internal/service/availability"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

const (
	defaultNotifyTimeout = 30 * time.Second

	notificationBooked    = "booked"
	notificationCancelled = "cancelled"
)

// Service единственный компонент, изменяющий записи.
// Каждое изменение выполняется одной мутацией хранилища на свежем снимке:
// очистка устаревших записей, проверка календаря и занятости, запись.
type Service struct {
	store         AppointmentStore
	calendar      *calendar.Calendar
	validator     Validator
	notifier      Notifier
	metrics       MetricsRecorder
	timeProvider  TimeProvider
	newID         func() string
	retentionDays int
	notifyTimeout time.Duration
	logger        Logger

	notifications sync.WaitGroup
}

// Option настройка сервиса
type Option func(*Service)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Service) { s.timeProvider = tp }
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithRetentionDays срок хранения прошедших записей в днях
func WithRetentionDays(days int) Option {
	return func(s *Service) { s.retentionDays = days }
}

// WithNotifyTimeout ограничение времени на одно уведомление
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) { s.notifyTimeout = d }
}

// NewService создает новый экземпляр сервиса записей.
// notifier и metrics могут быть nil.
func NewService(
	store AppointmentStore,
	cal *calendar.Calendar,
	validator Validator,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
	opts ...Option,
) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	s := &Service{
		store:         store,
		calendar:      cal,
		validator:     validator,
		notifier:      notifier,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		newID:         uuid.NewString,
		retentionDays: domain.DefaultRetentionDays,
		notifyTimeout: defaultNotifyTimeout,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create проверяет заявку и атомарно добавляет активную запись.
// Занятость проверяется внутри мутации, поэтому две заявки на один слот
// не могут пройти обе.
func (s *Service) Create(ctx context.Context, req *models.CreateAppointmentRequest) (*models.AppointmentResponse, error) {
	now := s.timeProvider.Now()

	booking, err := s.validator.ValidateBooking(req.ToInput(), now)
	if err != nil {
		s.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("CreateAppointment: date=%s, time=%s, service=%d", booking.Date, booking.Time, booking.Service.ID)

	var (
		created domain.Appointment
		purged  int
	)
	err = s.store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
		list, purged = s.purge(list, now)

		if err := s.calendar.Check(booking.Date, booking.Time, now); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrSlotNotBookable, err)
		}
		if availability.SlotTaken(list, booking.Date, booking.Time, "") {
			return nil, false, ErrSlotTaken
		}

		created = domain.NewAppointment(
			s.newID(),
			booking.Name,
			booking.Email,
			booking.Service,
			booking.Date,
			booking.Time,
			booking.Notes,
			now,
		)
		return append(list, created), true, nil
	})
	if err != nil {
		return nil, s.mapWriteError("CreateAppointment", err)
	}

	s.metrics.AppointmentCreated()
	s.metrics.AppointmentsPurged(purged)
	s.logger.Info("CreateAppointment: created id=%s for %s %s", created.ID, created.Date, created.Time)

	s.notify(notificationBooked, created)

	resp := models.FromDomainAppointment(created)
	return &resp, nil
}

// Cancel переводит запись в cancelled. Повторная отмена успешна и ничего не меняет.
func (s *Service) Cancel(ctx context.Context, id string) (*models.CancelResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	now := s.timeProvider.Now()
	s.logger.Info("CancelAppointment: id=%s", id)

	var (
		result  domain.Appointment
		already bool
		purged  int
	)
	err := s.store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
		list, purged = s.purge(list, now)

		idx := indexOf(list, id)
		if idx < 0 {
			return nil, false, ErrNotFound
		}

		if list[idx].IsCancelled() {
			already = true
			result = list[idx]
			return list, purged > 0, nil
		}

		already = false
		list[idx].Status = domain.StatusCancelled
		result = list[idx]
		return list, true, nil
	})
	if err != nil {
		return nil, s.mapWriteError("CancelAppointment", err)
	}

	s.metrics.AppointmentsPurged(purged)

	if already {
		s.logger.Info("CancelAppointment: id=%s was already cancelled", id)
	} else {
		s.metrics.AppointmentCancelled()
		s.logger.Info("CancelAppointment: id=%s cancelled, slot %s %s released", id, result.Date, result.Time)
		s.notify(notificationCancelled, result)
	}

	return &models.CancelResult{
		Appointment:      models.FromDomainAppointment(result),
		AlreadyCancelled: already,
	}, nil
}

// Reschedule переносит активную запись на другой слот.
// При любой ошибке исходная запись остаётся без изменений.
func (s *Service) Reschedule(ctx context.Context, req *models.RescheduleRequest) (*models.AppointmentResponse, error) {
	now := s.timeProvider.Now()

	target, err := s.validator.ValidateReschedule(req.ToInput(), now)
	if err != nil {
		s.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("RescheduleAppointment: id=%s to %s %s", target.AppointmentID, target.Date, target.Time)

	var (
		result domain.Appointment
		moved  bool
		purged int
	)
	err = s.store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
		list, purged = s.purge(list, now)

		idx := indexOf(list, target.AppointmentID)
		if idx < 0 {
			return nil, false, ErrNotFound
		}
		if list[idx].IsCancelled() {
			return nil, false, ErrAppointmentCancelled
		}

		if list[idx].Date.Equal(target.Date) && list[idx].Time.Equal(target.Time) {
			moved = false
			result = list[idx]
			return list, purged > 0, nil
		}

		if err := s.calendar.Check(target.Date, target.Time, now); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrSlotNotBookable, err)
		}
		if availability.SlotTaken(list, target.Date, target.Time, target.AppointmentID) {
			return nil, false, ErrSlotTaken
		}

		moved = true
		list[idx].Date = target.Date
		list[idx].Time = target.Time
		result = list[idx]
		return list, true, nil
	})
	if err != nil {
		return nil, s.mapWriteError("RescheduleAppointment", err)
	}

	s.metrics.AppointmentsPurged(purged)
	if moved {
		s.metrics.AppointmentRescheduled()
		s.logger.Info("RescheduleAppointment: id=%s moved to %s %s", result.ID, result.Date, result.Time)
	}

	resp := models.FromDomainAppointment(result)
	return &resp, nil
}

// PurgeExpired удаляет записи старше срока хранения независимо от статуса.
// Повторный вызов ничего не удаляет и ничего не пишет.
func (s *Service) PurgeExpired(ctx context.Context, now time.Time) (*models.PurgeResult, error) {
	var removed int
	err := s.store.Update(ctx, func(list []domain.Appointment) ([]domain.Appointment, bool, error) {
		var next []domain.Appointment
		next, removed = s.purge(list, now)
		return next, removed > 0, nil
	})
	if err != nil {
		s.logger.Error("PurgeExpired: store error: %v", err)
		return nil, fmt.Errorf("%w: PurgeExpired - store: %v", ErrStorageUnavailable, err)
	}

	if removed > 0 {
		s.metrics.AppointmentsPurged(removed)
		s.logger.Info("PurgeExpired: removed %d appointments before %s", removed, s.cutoff(now))
	}
	return &models.PurgeResult{Removed: removed}, nil
}

// Get возвращает запись по идентификатору
func (s *Service) Get(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	s.purgeOpportunistically(ctx, "GetAppointment")

	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrNotFound) {
			s.logger.Warn("GetAppointment: id=%s not found", id)
			return nil, ErrNotFound
		}
		s.logger.Error("GetAppointment: store error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetAppointment - store: %v", ErrStorageUnavailable, err)
	}

	resp := models.FromDomainAppointment(*a)
	return &resp, nil
}

// List возвращает все записи (для администратора)
func (s *Service) List(ctx context.Context) (*models.AppointmentListResponse, error) {
	s.purgeOpportunistically(ctx, "ListAppointments")

	list, err := s.store.ReadAll(ctx)
	if err != nil {
		s.logger.Error("ListAppointments: store error: %v", err)
		return nil, fmt.Errorf("%w: ListAppointments - store: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("ListAppointments: fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(sortBySlot(list)), nil
}

// ListByEmail возвращает записи клиента
func (s *Service) ListByEmail(ctx context.Context, email string) (*models.AppointmentListResponse, error) {
	email = appointment.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	s.purgeOpportunistically(ctx, "ListAppointmentsByEmail")

	list, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("ListAppointmentsByEmail: store error: %v", err)
		return nil, fmt.Errorf("%w: ListAppointmentsByEmail - store: %v", ErrStorageUnavailable, err)
	}

	return models.FromDomainAppointmentList(sortBySlot(list)), nil
}

// Wait дожидается отправки уже запущенных уведомлений
func (s *Service) Wait() {
	s.notifications.Wait()
}

func (s *Service) cutoff(now time.Time) types.Date {
	return s.calendar.Today(now).AddDays(-s.retentionDays)
}

func (s *Service) purge(list []domain.Appointment, now time.Time) ([]domain.Appointment, int) {
	cutoff := s.cutoff(now)
	kept := make([]domain.Appointment, 0, len(list))
	for _, a := range list {
		if a.IsExpired(cutoff) {
			continue
		}
		kept = append(kept, a)
	}
	return kept, len(list) - len(kept)
}

// purgeOpportunistically очистка перед чтением; ошибка только логируется
func (s *Service) purgeOpportunistically(ctx context.Context, op string) {
	if _, err := s.PurgeExpired(ctx, s.timeProvider.Now()); err != nil {
		s.logger.Warn("%s: purge before read failed: %v", op, err)
	}
}

func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, ErrSlotTaken), errors.Is(err, appointment.ErrSlotTaken):
		s.metrics.SlotConflict()
		s.logger.Warn("%s: slot conflict: %v", op, err)
		return ErrSlotTaken
	case errors.Is(err, ErrNotFound):
		s.logger.Warn("%s: appointment not found", op)
		return ErrNotFound
	case errors.Is(err, ErrSlotNotBookable), errors.Is(err, ErrAppointmentCancelled):
		s.logger.Warn("%s: rejected: %v", op, err)
		return err
	default:
		s.logger.Error("%s: store error: %v", op, err)
		return fmt.Errorf("%w: %s - store: %v", ErrStorageUnavailable, op, err)
	}
}

// notify отправляет уведомление в отдельной горутине с собственным таймаутом
func (s *Service) notify(kind string, a domain.Appointment) {
	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		defer func() {
			if r := recover(); r != nil {
				s.metrics.NotificationFailed(kind)
				s.logger.Error("notify %s: panic for id=%s: %v", kind, a.ID, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		var err error
		switch kind {
		case notificationBooked:
			err = s.notifier.AppointmentBooked(ctx, a)
		case notificationCancelled:
			err = s.notifier.AppointmentCancelled(ctx, a)
		}
		if err != nil {
			s.metrics.NotificationFailed(kind)
			s.logger.Warn("notify %s: failed for id=%s: %v", kind, a.ID, err)
		}
	}()
}

func indexOf(list []domain.Appointment, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func sortBySlot(list []domain.Appointment) []domain.Appointment {
	out := domain.CloneAppointments(list)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Date.Compare(out[j].Date); c != 0 {
			return c < 0
		}
		return out[i].Time.IsBefore(out[j].Time)
	})
	return out
}
