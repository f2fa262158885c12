package cancel_appointment

import (
	"net/http"
	"strings"

	"github.com/m04kA/barbershop-booking/internal/service/appointments/models"
)

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	Message     string                     `json:"message"`
	Appointment models.AppointmentResponse `json:"appointment"`
}

// FromServiceResponse конвертирует результат отмены в HTTP response
func FromServiceResponse(result *models.CancelResult) CancelAppointmentResponse {
	return CancelAppointmentResponse{
		Message:     msgCancelled,
		Appointment: result.Appointment,
	}
}

// linkID идентификатор из ссылки в письме: ?token= или ?id=
func linkID(r *http.Request) string {
	q := r.URL.Query()
	if token := strings.TrimSpace(q.Get("token")); token != "" {
		return token
	}
	return strings.TrimSpace(q.Get("id"))
}
