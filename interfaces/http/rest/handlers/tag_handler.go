package handlers

import (
	"encoding/json"
	"net/http"

	"catalog-backend/application/services"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/common"
	"catalog-backend/pkg/errors"
	"catalog-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tags         *services.TagService
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tags *services.TagService, errorHandler *errors.ErrorHandler, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		tags:         tags,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// TagRequest represents the request body for creating or renaming a tag
type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Create handles POST /tags
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
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

	tag, err := h.tags.Create(r.Context(), user, req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, tag)
}

// Update handles PUT /tags/{tagID}
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
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

	tag, err := h.tags.Update(r.Context(), user, chi.URLParam(r, "tagID"), req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, tag)
}

// Delete handles DELETE /tags/{tagID}
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.tags.Delete(r.Context(), user, chi.URLParam(r, "tagID")); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "tag deleted"})
}

// Get handles GET /tags/{tagID}
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	tag, err := h.tags.Get(r.Context(), chi.URLParam(r, "tagID"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, tag)
}

// List handles GET /tags
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, tags)
}
