package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/appointments"
	"github.com/m04kA/barbershop-booking/internal/validation"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgValidationFailed   = "Validation failed"
	msgSlotTaken          = "Slot already taken"
	msgSlotNotBookable    = "Selected slot is not available for booking"
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

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			h.logger.Warn("POST /appointments - Validation failed: %v", verrs)
			handlers.RespondValidationError(w, msgValidationFailed, verrs)

		case errors.Is(err, appointments.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot already taken: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, appointments.ErrSlotNotBookable):
			h.logger.Warn("POST /appointments - Slot not bookable: date=%s, time=%s, error=%v", req.Date, req.Time, err)
			handlers.RespondBadRequest(w, msgSlotNotBookable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: id=%s, date=%s, time=%s",
		result.ID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, CreateAppointmentResponse{Appointment: result})
}
