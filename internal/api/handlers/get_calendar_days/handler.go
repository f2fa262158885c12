package get_calendar_days

import (
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
)

type Handler struct {
	service AvailabilityService
	clock   TimeProvider
	logger  Logger
}

func NewHandler(service AvailabilityService, clock TimeProvider, logger Logger) *Handler {
	return &Handler{
		service: service,
		clock:   clock,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.Days(r.Context(), h.clock.Now())
	if err != nil {
		h.logger.Error("GET /availability/days - Failed to build day window: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/days - Day window retrieved: days=%d", len(days))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(days))
}
