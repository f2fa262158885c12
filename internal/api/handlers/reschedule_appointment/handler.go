package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/appointments"
	"github.com/m04kA/barbershop-booking/internal/validation"
)

const (
	msgRescheduled        = "Appointment rescheduled successfully"
	msgInvalidRequestBody = "Invalid request body"
	msgValidationFailed   = "Validation failed"
	msgNotFound           = "Appointment not found"
	msgSlotTaken          = "Slot already taken"
	msgSlotNotBookable    = "Selected slot is not available for booking"
	msgCancelled          = "Cancelled appointments cannot be rescheduled"
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

// Handle PUT /api/v1/admin/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reschedule(r.Context(), req.ToServiceRequest())
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			h.logger.Warn("PUT /admin/appointments - Validation failed: id=%s, error=%v", req.AppointmentID, verrs)
			handlers.RespondValidationError(w, msgValidationFailed, verrs)

		case errors.Is(err, appointments.ErrNotFound):
			h.logger.Warn("PUT /admin/appointments - Appointment not found: id=%s", req.AppointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrSlotTaken):
			h.logger.Warn("PUT /admin/appointments - Slot already taken: id=%s, date=%s, time=%s",
				req.AppointmentID, req.NewDate, req.NewTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, appointments.ErrAppointmentCancelled):
			h.logger.Warn("PUT /admin/appointments - Appointment is cancelled: id=%s", req.AppointmentID)
			handlers.RespondConflict(w, msgCancelled)

		case errors.Is(err, appointments.ErrSlotNotBookable):
			h.logger.Warn("PUT /admin/appointments - Slot not bookable: id=%s, error=%v", req.AppointmentID, err)
			handlers.RespondBadRequest(w, msgSlotNotBookable)

		default:
			h.logger.Error("PUT /admin/appointments - Failed to reschedule: id=%s, error=%v", req.AppointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/appointments - Appointment rescheduled successfully: id=%s, date=%s, time=%s",
		result.ID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusOK, RescheduleAppointmentResponse{
		Message:     msgRescheduled,
		Appointment: result,
	})
}
