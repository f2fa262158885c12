package get_services

import (
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services := h.service.List()

	h.logger.Info("GET /services - Catalog retrieved: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, ServicesResponse{Services: services})
}
