package models

import (
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/validation"
)

// Request модели

// CreateAppointmentRequest запрос на запись
type CreateAppointmentRequest struct {
	Name    string                   `json:"name"`
	Email   string                   `json:"email"`
	Service *validation.ServiceInput `json:"service"`
	Date    string                   `json:"date"`
	Time    string                   `json:"time"`
	Notes   string                   `json:"notes,omitempty"`
}

// ToInput конвертирует запрос во вход валидатора
func (r *CreateAppointmentRequest) ToInput() validation.BookingInput {
	return validation.BookingInput{
		Name:    r.Name,
		Email:   r.Email,
		Service: r.Service,
		Date:    r.Date,
		Time:    r.Time,
		Notes:   r.Notes,
	}
}

// RescheduleRequest запрос на перенос записи
type RescheduleRequest struct {
	AppointmentID string `json:"appointmentId"`
	NewDate       string `json:"newDate"`
	NewTime       string `json:"newTime"`
}

// ToInput конвертирует запрос во вход валидатора
func (r *RescheduleRequest) ToInput() validation.RescheduleInput {
	return validation.RescheduleInput{
		AppointmentID: r.AppointmentID,
		NewDate:       r.NewDate,
		NewTime:       r.NewTime,
	}
}

// Response модели

// ServiceResponse денормализованная услуга записи
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Service   ServiceResponse `json:"service"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	Status    string          `json:"status"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// CancelResult результат отмены
type CancelResult struct {
	Appointment      AppointmentResponse `json:"appointment"`
	AlreadyCancelled bool                `json:"alreadyCancelled"`
}

// PurgeResult результат очистки устаревших записей
type PurgeResult struct {
	Removed int `json:"removed"`
}

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Service: ServiceResponse{
			ID:              a.Service.ID,
			Name:            a.Service.Name,
			Price:           a.Service.Price,
			DurationMinutes: a.Service.DurationMinutes,
		},
		Date:      a.Date.String(),
		Time:      a.Time.String(),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		Status:    string(a.Status),
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []domain.Appointment) *AppointmentListResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{
		Appointments: out,
		Total:        len(out),
	}
}
