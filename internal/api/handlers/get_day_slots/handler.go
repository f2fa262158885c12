package get_day_slots

import (
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
)

const (
	msgMissingDate = "Date is required"
	msgInvalidDate = "Invalid date format, expected YYYY-MM-DD"
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

// Handle GET /api/v1/availability/slots?date=YYYY-MM-DD
// Выходной, прошедшая дата или дата за горизонтом дают пустой список, а не ошибку.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := ParseDateParam(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AvailableSlotsForDay(r.Context(), date, h.clock.Now())
	if err != nil {
		h.logger.Error("GET /availability/slots - Failed to get slots: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/slots - Slots retrieved: date=%s, slots_count=%d", date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
