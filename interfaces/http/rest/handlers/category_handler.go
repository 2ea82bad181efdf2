package handlers

import (
	"encoding/json"
	"net/http"

	"catalog-backend/application/cascade"
	"catalog-backend/application/services"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/common"
	"catalog-backend/pkg/errors"
	"catalog-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categories   *services.CategoryService
	coordinator  *cascade.Coordinator
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(
	categories *services.CategoryService,
	coordinator *cascade.Coordinator,
	errorHandler *errors.ErrorHandler,
	logger *zap.Logger,
) *CategoryHandler {
	return &CategoryHandler{
		categories:   categories,
		coordinator:  coordinator,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Image       string `json:"image,omitempty" validate:"omitempty,max=2000"`
}

// UpdateCategoryRequest represents the request body for updating a category
type UpdateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Image string `json:"image,omitempty" validate:"omitempty,max=2000"`
}

// Create handles POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError(err.Error()))
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	category, err := h.categories.Create(r.Context(), user, services.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, category)
}

// Update handles PUT /categories/{categoryID}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError(err.Error()))
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	category, err := h.categories.Update(r.Context(), user, services.UpdateCategoryInput{
		ID:    chi.URLParam(r, "categoryID"),
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /categories/{categoryID}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), user, chi.URLParam(r, "categoryID")); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

// Get handles GET /categories/{categoryID}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Get(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, category)
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, categories)
}

// BulkDeleteItems handles POST /categories/{categoryID}/items/bulk-delete.
// The work happens asynchronously; the caller gets an acknowledgment.
func (h *CategoryHandler) BulkDeleteItems(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.categories.RequestBulkDelete(r.Context(), user, h.coordinator, chi.URLParam(r, "categoryID")); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusAccepted, map[string]string{"message": "bulk delete processing"})
}
