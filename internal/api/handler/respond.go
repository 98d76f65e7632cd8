// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"finledger/internal/api/types"
	"finledger/internal/util"
)

// DefaultTimeout bounds request handling end to end.
const DefaultTimeout = 60 * time.Second

// Error codes exposed in the response envelope.
const (
	codeValidation          = "VALIDATION_ERROR"
	codeNotFound            = "NOT_FOUND"
	codeInsufficientBalance = "INSUFFICIENT_BALANCE"
	codeDuplicateEntry      = "DUPLICATE_ENTRY"
	codeInternal            = "INTERNAL_ERROR"
)

// respondWithJSON writes the payload as JSON with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondSuccess wraps data in the success envelope.
func respondSuccess(w http.ResponseWriter, logger *slog.Logger, code int, data interface{}) {
	respondWithJSON(w, logger, code, types.APIResponse{Success: true, Data: data})
}

// respondList wraps a page of data together with pagination metadata.
func respondList(w http.ResponseWriter, logger *slog.Logger, data interface{}, page, limit int, total int64) {
	respondWithJSON(w, logger, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    data,
		Meta:    types.NewPaginationMeta(page, limit, total),
	})
}

// respondWithError maps a service error to the error envelope and status code.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	apiErr := types.APIError{Code: codeInternal, Message: "Internal server error"}

	var insufficientErr *util.InsufficientBalanceError

	switch {
	case errors.As(err, &insufficientErr):
		statusCode = http.StatusBadRequest
		apiErr = types.APIError{
			Code:    codeInsufficientBalance,
			Message: "Insufficient balance",
			Details: map[string]string{
				"current":  insufficientErr.Current.String(),
				"required": insufficientErr.Required.String(),
			},
		}
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		apiErr = types.APIError{Code: codeNotFound, Message: "Resource not found"}
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusBadRequest
		apiErr = types.APIError{Code: codeDuplicateEntry, Message: err.Error()}
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrSameWalletTransfer),
		util.IsError(err, util.ErrDefaultCategory):
		statusCode = http.StatusBadRequest
		apiErr = types.APIError{Code: codeValidation, Message: err.Error()}
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, types.APIResponse{Success: false, Error: &apiErr})
}

// respondBadRequest reports a malformed request body or parameter.
func respondBadRequest(w http.ResponseWriter, logger *slog.Logger, message string) {
	respondWithJSON(w, logger, http.StatusBadRequest, types.APIResponse{
		Success: false,
		Error:   &types.APIError{Code: codeValidation, Message: message},
	})
}

// Pagination defaults for list endpoints.
const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// parsePagination reads page and limit query parameters, clamping to sane values.
func parsePagination(r *http.Request) (page, limit int) {
	page = defaultPage
	limit = defaultLimit
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// parseDate accepts dates as YYYY-MM-DD or RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
