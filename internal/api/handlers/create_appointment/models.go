package create_appointment

import (
	"github.com/m04kA/barbershop-booking/internal/service/appointments/models"
	"github.com/m04kA/barbershop-booking/internal/validation"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Name    string                   `json:"name"`
	Email   string                   `json:"email"`
	Service *validation.ServiceInput `json:"service"`
	Date    string                   `json:"date"`
	Time    string                   `json:"time"`
	Notes   string                   `json:"notes"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *CreateAppointmentRequest) ToServiceRequest() *models.CreateAppointmentRequest {
	return &models.CreateAppointmentRequest{
		Name:    r.Name,
		Email:   r.Email,
		Service: r.Service,
		Date:    r.Date,
		Time:    r.Time,
		Notes:   r.Notes,
	}
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
}
