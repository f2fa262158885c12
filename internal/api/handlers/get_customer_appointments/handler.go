package get_customer_appointments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/appointments"
)

const (
	msgMissingEmail = "Email is required"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?email=
// Записи клиента, отсортированные по дате и времени. Устаревшие удаляются перед ответом.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		h.logger.Warn("GET /appointments - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	result, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid email: %v", err)
			handlers.RespondBadRequest(w, msgMissingEmail)

		default:
			h.logger.Error("GET /appointments - Failed to get appointments: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
