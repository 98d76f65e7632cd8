// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"finledger/internal/api/middleware"
	"finledger/internal/service"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	service service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateWalletRequest represents the request body for wallet creation.
type CreateWalletRequest struct {
	Name           string           `json:"name"`
	Icon           *string          `json:"icon"`
	Color          *string          `json:"color"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
	DisplayOrder   int              `json:"display_order"`
}

// UpdateWalletRequest represents the request body for a wallet update.
type UpdateWalletRequest struct {
	Name         *string `json:"name"`
	Icon         *string `json:"icon"`
	Color        *string `json:"color"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// List handles GET /api/wallet.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	wallets, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, wallets)
}

// Create handles POST /api/wallet.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, h.logger, "Invalid request body")
		return
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != nil {
		initialBalance = *req.InitialBalance
	}

	wallet, err := h.service.Create(r.Context(), userID, service.CreateWalletInput{
		Name:           req.Name,
		Icon:           req.Icon,
		Color:          req.Color,
		InitialBalance: initialBalance,
		DisplayOrder:   req.DisplayOrder,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusCreated, wallet)
}

// Get handles GET /api/wallet/{walletID}.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	walletID, err := strconv.ParseInt(chi.URLParam(r, "walletID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid wallet ID")
		return
	}

	wallet, err := h.service.Get(r.Context(), userID, walletID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, wallet)
}

// Update handles PATCH /api/wallet/{walletID}.
func (h *WalletHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	walletID, err := strconv.ParseInt(chi.URLParam(r, "walletID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid wallet ID")
		return
	}

	var req UpdateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, h.logger, "Invalid request body")
		return
	}

	wallet, err := h.service.Update(r.Context(), userID, walletID, service.UpdateWalletInput{
		Name:         req.Name,
		Icon:         req.Icon,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, wallet)
}

// Delete handles DELETE /api/wallet/{walletID}. Wallets are deactivated, not
// removed, so their transaction history stays intact.
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	walletID, err := strconv.ParseInt(chi.URLParam(r, "walletID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid wallet ID")
		return
	}

	if err := h.service.SoftDelete(r.Context(), userID, walletID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, map[string]string{"message": "Wallet deleted"})
}

// Reorder handles PATCH /api/wallet/reorder.
func (h *WalletHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	var items []service.ReorderWalletItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		respondBadRequest(w, h.logger, "Invalid request body")
		return
	}

	if err := h.service.Reorder(r.Context(), userID, items); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, map[string]string{"message": "Wallets reordered"})
}

// RecomputeBalance handles GET /api/wallet/{walletID}/balance/recompute. It
// derives the wallet balance from the full ledger history without persisting it.
func (h *WalletHandler) RecomputeBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	walletID, err := strconv.ParseInt(chi.URLParam(r, "walletID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid wallet ID")
		return
	}

	balance, err := h.service.RecomputeBalance(r.Context(), userID, walletID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, map[string]interface{}{
		"wallet_id": walletID,
		"balance":   balance,
	})
}
