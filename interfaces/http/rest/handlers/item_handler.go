package handlers

import (
	"encoding/json"
	"net/http"

	"catalog-backend/application/queries"
	"catalog-backend/application/services"
	"catalog-backend/pkg/auth"
	"catalog-backend/pkg/common"
	"catalog-backend/pkg/errors"
	"catalog-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	items        *services.ItemService
	reader       *queries.ItemReader
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(
	items *services.ItemService,
	reader *queries.ItemReader,
	errorHandler *errors.ErrorHandler,
	logger *zap.Logger,
) *ItemHandler {
	return &ItemHandler{
		items:        items,
		reader:       reader,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateItemRequest represents the request body for creating an item.
// Price travels as a string to keep exact decimal representation.
type CreateItemRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1"`
	Price       string   `json:"price,omitempty"`
	Quantity    int      `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	MainImage   string   `json:"mainImage,omitempty" validate:"omitempty,max=2000"`
	Images      []string `json:"images,omitempty" validate:"omitempty,max=20,dive,max=2000"`
}

// Create handles POST /items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError(err.Error()))
		return
	}

	price := decimal.Zero
	if req.Price != "" {
		parsed, err := decimal.NewFromString(req.Price)
		if err != nil {
			h.errorHandler.Handle(w, r, errors.NewValidationError("price must be a decimal number"))
			return
		}
		price = parsed
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	item, err := h.items.Create(r.Context(), user, services.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.Category,
		TagIDs:      req.Tags,
		Price:       price,
		Quantity:    req.Quantity,
		MainImage:   req.MainImage,
		Images:      req.Images,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, item)
}

// Read handles GET /items. The query parameters select exactly one access
// path; see the query layer for the precedence between them.
func (h *ItemHandler) Read(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reader.Read(r.Context(), queries.ItemReadRequest{
		ItemID:     q.Get("item"),
		NameSearch: q.Get("namesearch"),
		Order:      q.Get("order"),
		Category:   q.Get("category"),
		Tag:        q.Get("tag"),
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if result.Item != nil {
		common.RespondJSON(w, http.StatusOK, result.Item)
		return
	}
	common.RespondJSON(w, http.StatusOK, result.Items)
}

// Get handles GET /items/{itemID}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.reader.Read(r.Context(), queries.ItemReadRequest{
		ItemID: chi.URLParam(r, "itemID"),
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result.Item)
}

// Delete handles DELETE /items/{itemID}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.items.Delete(r.Context(), user, chi.URLParam(r, "itemID")); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
