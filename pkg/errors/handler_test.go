package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	handler := NewErrorHandler(zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req, err)

	var body ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"validation", NewValidationError("bad input"), http.StatusBadRequest, "VALIDATION"},
		{"not found", NewNotFoundError("category abc"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflictError("name taken"), http.StatusConflict, "CONFLICT"},
		{"unauthorized", NewUnauthorizedError(""), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError(""), http.StatusForbidden, "FORBIDDEN"},
		{"database", NewDatabaseError("PutItem", fmt.Errorf("throttled")), http.StatusInternalServerError, "DATABASE"},
		{"external", NewExternalError("event bus", fmt.Errorf("down")), http.StatusBadGateway, "EXTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := handle(t, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.True(t, body.Error)
			assert.Equal(t, tc.typ, body.Type)
		})
	}
}

func TestErrorHandler_UnknownErrorIsInternalAndOpaque(t *testing.T) {
	rec, body := handle(t, fmt.Errorf("sql: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL", body.Type)
	assert.NotContains(t, body.Message, "connection refused")
}

func TestErrorHandler_DetailsPassThrough(t *testing.T) {
	err := NewConflictError("items with this category exist").
		WithDetails(map[string]interface{}{"dependentCount": 3})

	_, body := handle(t, err)

	assert.EqualValues(t, 3, body.Details["dependentCount"])
}

func TestAppError_UnwrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("throttled")
	err := NewDatabaseError("Query", cause)

	assert.ErrorIs(t, err, cause)
}
