package handlers

import (
	"encoding/json"
	"net/http"

	"catalog-backend/application/services"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/common"
	"catalog-backend/pkg/errors"
	"catalog-backend/pkg/utils"

	"go.uber.org/zap"
)

// ImageHandler hands out presigned URLs for the image bucket
type ImageHandler struct {
	images       *services.ImageService
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(images *services.ImageService, errorHandler *errors.ErrorHandler, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		images:       images,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// UploadURLRequest represents the request body for an upload URL
type UploadURLRequest struct {
	FileName string `json:"fileName" validate:"required,min=1,max=255"`
}

// DownloadURLRequest represents the request body for a download URL
type DownloadURLRequest struct {
	Image string `json:"image" validate:"required,min=1,max=2000"`
}

// UploadURL handles POST /images/upload-url
// Uploading requires an authenticated caller.
func (h *ImageHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.GetUserFromContext(r.Context()); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var req UploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError(err.Error()))
		return
	}

	url, err := h.images.UploadURL(r.Context(), req.FileName)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"uploadURL": url})
}

// DownloadURL handles POST /images/download-url
func (h *ImageHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	var req DownloadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError(err.Error()))
		return
	}

	url, err := h.images.DownloadURL(r.Context(), req.Image)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"downloadURL": url})
}
