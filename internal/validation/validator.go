package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/barbershop-booking/internal/calendar"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Field names used in FieldError
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldService       = "service"
	FieldDate          = "date"
	FieldTime          = "time"
	FieldNotes         = "notes"
	FieldAppointmentID = "appointmentId"
)

var (
	nameRegex = regexp.MustCompile(`^[a-zA-ZäöüÄÖÜß\s\-']+$`)
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

	dangerousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<script\b.*?</script\s*>`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
	}
)

// Catalog разрешает выбранную клиентом услугу в запись каталога
type Catalog interface {
	Resolve(id int64, name string) (domain.Service, error)
}

// Validator проверяет и нормализует ввод. Не обращается к хранилищу:
// занятость слота и правила конкретного дня проверяются при записи.
type Validator struct {
	calendar *calendar.Calendar
	catalog  Catalog
	validate *validator.Validate
}

// New создает валидатор
func New(cal *calendar.Calendar, catalog Catalog) *Validator {
	return &Validator{
		calendar: cal,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// ValidateName имя 2..50 символов: буквы (включая умлауты), пробелы, дефис, апостроф
func (v *Validator) ValidateName(name string) Result {
	sanitized := strings.TrimSpace(name)
	if sanitized == "" {
		return fail(msgNameRequired)
	}

	length := utf8.RuneCountInString(sanitized)
	if length < domain.MinNameLength {
		return fail(fmt.Sprintf(msgNameTooShort, domain.MinNameLength))
	}
	if length > domain.MaxNameLength {
		return fail(fmt.Sprintf(msgNameTooLong, domain.MaxNameLength))
	}
	if !nameRegex.MatchString(sanitized) {
		return fail(msgNameCharacters)
	}
	return ok(sanitized)
}

// ValidateEmail обрезает пробелы и приводит к нижнему регистру
func (v *Validator) ValidateEmail(email string) Result {
	sanitized := strings.ToLower(strings.TrimSpace(email))
	if sanitized == "" {
		return fail(msgEmailRequired)
	}
	if len(sanitized) > domain.MaxEmailLength {
		return fail(msgEmailTooLong)
	}
	if err := v.validate.Var(sanitized, "email"); err != nil {
		return fail(msgEmailInvalid)
	}
	return ok(sanitized)
}

// ValidateNotes необязательное поле; вырезает script-теги, javascript: и on*= атрибуты.
// Экранирование при выводе остаётся обязанностью того, кто выводит.
func (v *Validator) ValidateNotes(notes string) Result {
	sanitized := strings.TrimSpace(notes)
	if sanitized == "" {
		return ok("")
	}
	if utf8.RuneCountInString(sanitized) > domain.MaxNotesLength {
		return fail(fmt.Sprintf(msgNotesTooLong, domain.MaxNotesLength))
	}
	return ok(strings.TrimSpace(stripDangerous(sanitized)))
}

func stripDangerous(s string) string {
	for {
		cleaned := s
		for _, pattern := range dangerousPatterns {
			cleaned = pattern.ReplaceAllString(cleaned, "")
		}
		if cleaned == s {
			return cleaned
		}
		s = cleaned
	}
}

// ValidateDate YYYY-MM-DD, существующая дата от сегодня до конца горизонта
func (v *Validator) ValidateDate(date string, now time.Time) Result {
	date = strings.TrimSpace(date)
	if date == "" {
		return fail(msgDateRequired)
	}
	if !dateRegex.MatchString(date) {
		return fail(msgDateFormat)
	}

	parsed, err := types.ParseDate(date)
	if err != nil {
		return fail(msgDateInvalid)
	}
	if parsed.Before(v.calendar.Today(now)) {
		return fail(msgDatePast)
	}
	if parsed.After(v.calendar.HorizonEnd(now)) {
		return fail(fmt.Sprintf(msgDateBeyondHorizon, v.calendar.HorizonDays))
	}
	return ok(parsed.String())
}

// ValidateTime HH:MM внутри рабочих часов недели и на сетке слотов.
// Закрытие в субботу, воскресенье и прошедшие слоты сегодня проверяет календарь.
func (v *Validator) ValidateTime(t string) Result {
	t = strings.TrimSpace(t)
	if t == "" {
		return fail(msgTimeRequired)
	}
	if !timeRegex.MatchString(t) {
		return fail(msgTimeFormat)
	}

	parsed, err := types.NewTimeStringFromString(t)
	if err != nil {
		return fail(msgTimeFormat)
	}

	open, closing, exists := v.calendar.OpeningRange()
	if !exists || parsed.IsBefore(open) || !parsed.IsBefore(closing) {
		return fail(fmt.Sprintf(msgTimeHours, open, closing))
	}
	if (parsed.Minutes()-open.Minutes())%v.calendar.SlotMinutes != 0 {
		return fail(fmt.Sprintf(msgTimeGrid, v.calendar.SlotMinutes))
	}
	return ok(parsed.String())
}

// ServiceInput услуга в запросе клиента. Цена и длительность берутся из каталога.
type ServiceInput struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price,omitempty"`
	Duration int     `json:"duration,omitempty"`
}

// ValidateService находит услугу в каталоге
func (v *Validator) ValidateService(in *ServiceInput) (domain.Service, Result) {
	if in == nil {
		return domain.Service{}, fail(msgServiceRequired)
	}
	if in.ID <= 0 {
		return domain.Service{}, fail(msgServiceInvalid)
	}

	svc, err := v.catalog.Resolve(in.ID, in.Name)
	if err != nil {
		return domain.Service{}, fail(msgServiceUnknown)
	}
	return svc, ok(svc.Name)
}

// BookingInput сырые поля запроса на запись
type BookingInput struct {
	Name    string
	Email   string
	Service *ServiceInput
	Date    string
	Time    string
	Notes   string
}

// Booking нормализованная заявка на запись
type Booking struct {
	Name    string
	Email   string
	Service domain.Service
	Date    types.Date
	Time    types.TimeString
	Notes   string
}

// ValidateBooking проверяет все поля и собирает все ошибки разом
func (v *Validator) ValidateBooking(in BookingInput, now time.Time) (*Booking, error) {
	var errs Errors

	name := v.ValidateName(in.Name)
	errs.add(FieldName, name)

	email := v.ValidateEmail(in.Email)
	errs.add(FieldEmail, email)

	svc, service := v.ValidateService(in.Service)
	errs.add(FieldService, service)

	date := v.ValidateDate(in.Date, now)
	errs.add(FieldDate, date)

	t := v.ValidateTime(in.Time)
	errs.add(FieldTime, t)

	notes := v.ValidateNotes(in.Notes)
	errs.add(FieldNotes, notes)

	if len(errs) > 0 {
		return nil, errs
	}

	return &Booking{
		Name:    name.Value,
		Email:   email.Value,
		Service: svc,
		Date:    types.MustParseDate(date.Value),
		Time:    types.TimeString(t.Value),
		Notes:   notes.Value,
	}, nil
}

// RescheduleInput сырые поля запроса на перенос
type RescheduleInput struct {
	AppointmentID string
	NewDate       string
	NewTime       string
}

// Reschedule нормализованная заявка на перенос
type Reschedule struct {
	AppointmentID string
	Date          types.Date
	Time          types.TimeString
}

// ValidateReschedule проверяет идентификатор и новый слот
func (v *Validator) ValidateReschedule(in RescheduleInput, now time.Time) (*Reschedule, error) {
	var errs Errors

	id := strings.TrimSpace(in.AppointmentID)
	if id == "" {
		errs.add(FieldAppointmentID, fail(msgAppointmentIDRequired))
	}

	date := v.ValidateDate(in.NewDate, now)
	errs.add(FieldDate, date)

	t := v.ValidateTime(in.NewTime)
	errs.add(FieldTime, t)

	if len(errs) > 0 {
		return nil, errs
	}

	return &Reschedule{
		AppointmentID: id,
		Date:          types.MustParseDate(date.Value),
		Time:          types.TimeString(t.Value),
	}, nil
}
