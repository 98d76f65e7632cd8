// internal/api/handler/stats.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"finledger/internal/api/middleware"
	"finledger/internal/domain"
	"finledger/internal/service"
)

// StatsHandler handles HTTP requests for dashboard and statistics endpoints.
type StatsHandler struct {
	service service.StatsService
	logger  *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		service: svc,
		logger:  logger,
	}
}

// Dashboard handles GET /api/dashboard.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	summary, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, summary)
}

// Monthly handles GET /api/statistics/monthly. Accepts optional year and
// months query parameters.
func (h *StatsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	query := r.URL.Query()

	year := time.Now().Year()
	if v := query.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1970 || n > 9999 {
			respondBadRequest(w, h.logger, "Invalid year")
			return
		}
		year = n
	}

	months := 0
	if v := query.Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 24 {
			respondBadRequest(w, h.logger, "Invalid months")
			return
		}
		months = n
	}

	stats, err := h.service.Monthly(r.Context(), userID, year, months)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, stats)
}

// ByCategory handles GET /api/statistics/category. Accepts optional type,
// start_date and end_date query parameters.
func (h *StatsHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	query := r.URL.Query()

	var txType *domain.TransactionType
	if v := query.Get("type"); v != "" {
		t := domain.TransactionType(v)
		if !t.Valid() {
			respondBadRequest(w, h.logger, "Invalid type filter")
			return
		}
		txType = &t
	}

	var start, end *time.Time
	if v := query.Get("start_date"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid start_date filter")
			return
		}
		start = &parsed
	}
	if v := query.Get("end_date"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid end_date filter")
			return
		}
		end = &parsed
	}

	totals, err := h.service.ByCategory(r.Context(), userID, txType, start, end)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, totals)
}
