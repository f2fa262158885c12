package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/service/appointments"
)

const (
	msgCancelled  = "Appointment cancelled successfully"
	msgNotFound   = "Appointment not found"
	msgIDRequired = "Appointment ID required"
)

// Handler отмена записи. Идентификатор записи служит токеном отмены.
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

// Handle DELETE /api/v1/appointments/{id} и DELETE /api/v1/admin/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, "DELETE /appointments/{id}", mux.Vars(r)["id"])
}

// HandleLink GET /api/v1/cancel?token= (ссылка из письма, ?id= тоже принимается)
func (h *Handler) HandleLink(w http.ResponseWriter, r *http.Request) {
	id := linkID(r)
	if id == "" {
		h.logger.Warn("GET /cancel - Missing appointment id")
		handlers.RespondBadRequest(w, msgIDRequired)
		return
	}
	h.cancel(w, r, "GET /cancel", id)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request, op, id string) {
	result, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrNotFound):
			h.logger.Warn("%s - Appointment not found: id=%s", op, id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("%s - Failed to cancel appointment: id=%s, error=%v", op, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.AlreadyCancelled {
		h.logger.Info("%s - Appointment was already cancelled: id=%s", op, id)
	} else {
		h.logger.Info("%s - Appointment cancelled successfully: id=%s", op, id)
	}
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
