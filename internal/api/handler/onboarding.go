// internal/api/handler/onboarding.go
package handler

import (
	"log/slog"
	"net/http"

	"finledger/internal/api/middleware"
	"finledger/internal/service"
)

// OnboardingHandler handles HTTP requests for the first-login setup endpoint.
type OnboardingHandler struct {
	service service.OnboardingService
	logger  *slog.Logger
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(svc service.OnboardingService, logger *slog.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		service: svc,
		logger:  logger,
	}
}

// Setup handles POST /api/onboarding. Idempotent: calling it for an already
// onboarded user is a no-op.
func (h *OnboardingHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	result, err := h.service.SetupNewUser(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyOnboarded {
		status = http.StatusOK
	}
	respondSuccess(w, h.logger, status, result)
}
