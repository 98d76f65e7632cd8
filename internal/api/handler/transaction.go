// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"finledger/internal/api/middleware"
	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/service"
)

// TransactionHandler handles HTTP requests related to transaction operations.
type TransactionHandler struct {
	service service.TransactionService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	WalletID        int64           `json:"wallet_id"`
	CategoryID      *int64          `json:"category_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     *string         `json:"description"`
	Notes           *string         `json:"notes"`
	TransactionDate string          `json:"transaction_date"`
}

// UpdateTransactionRequest represents the request body for a transaction update.
// Omitting category_id keeps the current category; clear_category detaches it,
// since a JSON null is indistinguishable from an omitted field here.
type UpdateTransactionRequest struct {
	WalletID        *int64           `json:"wallet_id"`
	CategoryID      *int64           `json:"category_id"`
	ClearCategory   bool             `json:"clear_category"`
	Type            *string          `json:"type"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	Notes           *string          `json:"notes"`
	TransactionDate *string          `json:"transaction_date"`
}

// List handles GET /api/transaction with optional filters.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())
	page, limit := parsePagination(r)

	filter := repository.TransactionFilter{
		UserID: userID,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	query := r.URL.Query()
	if v := query.Get("wallet_id"); v != "" {
		walletID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid wallet_id filter")
			return
		}
		filter.WalletID = &walletID
	}
	if v := query.Get("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid category_id filter")
			return
		}
		filter.CategoryID = &categoryID
	}
	if v := query.Get("type"); v != "" {
		txType := domain.TransactionType(v)
		if !txType.Valid() {
			respondBadRequest(w, h.logger, "Invalid type filter")
			return
		}
		filter.Type = &txType
	}
	if v := query.Get("start_date"); v != "" {
		start, err := parseDate(v)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid start_date filter")
			return
		}
		filter.StartDate = &start
	}
	if v := query.Get("end_date"); v != "" {
		end, err := parseDate(v)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid end_date filter")
			return
		}
		filter.EndDate = &end
	}

	transactions, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondList(w, h.logger, transactions, page, limit, total)
}

// Recent handles GET /api/transaction/recent.
func (h *TransactionHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	transactions, err := h.service.Recent(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, transactions)
}

// Get handles GET /api/transaction/{transactionID}.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	transactionID, err := strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid transaction ID")
		return
	}

	transaction, err := h.service.Get(r.Context(), userID, transactionID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, transaction)
}

// Create handles POST /api/transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, h.logger, "Invalid request body")
		return
	}

	transactionDate := time.Now()
	if req.TransactionDate != "" {
		parsed, err := parseDate(req.TransactionDate)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid transaction_date")
			return
		}
		transactionDate = parsed
	}

	transaction, err := h.service.Create(r.Context(), userID, service.CreateTransactionInput{
		WalletID:        req.WalletID,
		CategoryID:      req.CategoryID,
		Type:            domain.TransactionType(req.Type),
		Amount:          req.Amount,
		Description:     req.Description,
		Notes:           req.Notes,
		TransactionDate: transactionDate,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusCreated, transaction)
}

// Update handles PUT /api/transaction/{transactionID}.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	transactionID, err := strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid transaction ID")
		return
	}

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, h.logger, "Invalid request body")
		return
	}

	input := service.UpdateTransactionInput{
		WalletID:      req.WalletID,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		Amount:        req.Amount,
		Description:   req.Description,
		Notes:         req.Notes,
	}
	if req.Type != nil {
		txType := domain.TransactionType(*req.Type)
		input.Type = &txType
	}
	if req.TransactionDate != nil {
		parsed, err := parseDate(*req.TransactionDate)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid transaction_date")
			return
		}
		input.TransactionDate = &parsed
	}

	transaction, err := h.service.Update(r.Context(), userID, transactionID, input)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, transaction)
}

// Delete handles DELETE /api/transaction/{transactionID}.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	transactionID, err := strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid transaction ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, transactionID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}
