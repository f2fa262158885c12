package reschedule_appointment

import "github.com/m04kA/barbershop-booking/internal/service/appointments/models"

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	AppointmentID string `json:"appointmentId"`
	NewDate       string `json:"newDate"`
	NewTime       string `json:"newTime"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *RescheduleAppointmentRequest) ToServiceRequest() *models.RescheduleRequest {
	return &models.RescheduleRequest{
		AppointmentID: r.AppointmentID,
		NewDate:       r.NewDate,
		NewTime:       r.NewTime,
	}
}

// RescheduleAppointmentResponse HTTP response model
type RescheduleAppointmentResponse struct {
	Message     string                      `json:"message"`
	Appointment *models.AppointmentResponse `json:"appointment"`
}
