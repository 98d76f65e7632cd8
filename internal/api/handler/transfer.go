// internal/api/handler/transfer.go
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
	"finledger/internal/repository"
	"finledger/internal/service"
)

// TransferHandler handles HTTP requests related to transfer operations.
type TransferHandler struct {
	service service.TransferService
	logger  *slog.Logger
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(svc service.TransferService, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateTransferRequest represents the request body for transfer creation.
type CreateTransferRequest struct {
	FromWalletID int64            `json:"from_wallet_id"`
	ToWalletID   int64            `json:"to_wallet_id"`
	Amount       decimal.Decimal  `json:"amount"`
	Fee          *decimal.Decimal `json:"fee"`
	Description  *string          `json:"description"`
	TransferDate string           `json:"transfer_date"`
}

// List handles GET /api/transfer with optional filters.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())
	page, limit := parsePagination(r)

	filter := repository.TransferFilter{
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

	transfers, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondList(w, h.logger, transfers, page, limit, total)
}

// Get handles GET /api/transfer/{transferID}.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	transferID, err := strconv.ParseInt(chi.URLParam(r, "transferID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid transfer ID")
		return
	}

	transfer, err := h.service.Get(r.Context(), userID, transferID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, transfer)
}

// Create handles POST /api/transfer.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	var req CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, h.logger, "Invalid request body")
		return
	}

	fee := decimal.Zero
	if req.Fee != nil {
		fee = *req.Fee
	}

	transferDate := time.Now()
	if req.TransferDate != "" {
		parsed, err := parseDate(req.TransferDate)
		if err != nil {
			respondBadRequest(w, h.logger, "Invalid transfer_date")
			return
		}
		transferDate = parsed
	}

	transfer, err := h.service.Create(r.Context(), userID, service.CreateTransferInput{
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       req.Amount,
		Fee:          fee,
		Description:  req.Description,
		TransferDate: transferDate,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusCreated, transfer)
}

// Delete handles DELETE /api/transfer/{transferID}. Both wallet balances are
// restored to their pre-transfer state.
func (h *TransferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	transferID, err := strconv.ParseInt(chi.URLParam(r, "transferID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid transfer ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, transferID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, map[string]string{"message": "Transfer deleted"})
}
