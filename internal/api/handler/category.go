// internal/api/handler/category.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finledger/internal/api/middleware"
	"finledger/internal/domain"
	"finledger/internal/service"
)

// CategoryHandler handles HTTP requests related to category operations.
type CategoryHandler struct {
	service service.CategoryService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Icon *string `json:"icon"`
}

// UpdateCategoryRequest represents the request body for a category update.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	categories, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, h.logger, "Invalid request body")
		return
	}

	category, err := h.service.Create(r.Context(), userID, service.CreateCategoryInput{
		Name: req.Name,
		Type: domain.CategoryType(req.Type),
		Icon: req.Icon,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusCreated, category)
}

// Update handles PATCH /api/categories/{categoryID}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, h.logger, "Invalid request body")
		return
	}

	category, err := h.service.Update(r.Context(), userID, categoryID, service.UpdateCategoryInput{
		Name: req.Name,
		Icon: req.Icon,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{categoryID}. Transactions referencing
// the category survive and become uncategorized.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UID(r.Context())

	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		respondBadRequest(w, h.logger, "Invalid category ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, categoryID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondSuccess(w, h.logger, http.StatusOK, map[string]string{"message": "Category deleted"})
}
