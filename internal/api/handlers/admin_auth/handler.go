package admin_auth

import (
	"net/http"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
)

const (
	msgInvalidRequest  = "Invalid request"
	msgInvalidPassword = "Invalid password"
)

type Handler struct {
	checker PasswordChecker
	logger  Logger
}

func NewHandler(checker PasswordChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/auth
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/auth - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	if !h.checker.CheckPassword(req.Password) {
		h.logger.Warn("POST /admin/auth - Invalid password")
		handlers.RespondUnauthorized(w, msgInvalidPassword)
		return
	}

	h.logger.Info("POST /admin/auth - Admin authenticated")
	handlers.RespondJSON(w, http.StatusOK, AuthResponse{Success: true})
}
