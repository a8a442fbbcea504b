package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusForKind(t *testing.T) {
	tests := []struct {
		kind     shared.ErrorKind
		expected int
	}{
		{shared.KindValidation, http.StatusBadRequest},
		{shared.KindNotFound, http.StatusNotFound},
		{shared.KindConflict, http.StatusConflict},
		{shared.KindInternal, http.StatusInternalServerError},
		{shared.ErrorKind("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatusForKind(tt.kind))
		})
	}
}

func TestNewErrorResponse_JSONShape(t *testing.T) {
	resp := NewErrorResponseWithDetails("COD_NOT_PAID", "Order 7 has not been paid", "req-1", map[string]any{"order_id": 7})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "COD_NOT_PAID",
			"message": "Order 7 has not been paid",
			"request_id": "req-1",
			"details": {"order_id": 7}
		}
	}`, string(raw))
}

func TestNewErrorResponseWithDetails_OmitsEmptyDetails(t *testing.T) {
	resp := NewErrorResponseWithDetails("SLIP_EMPTY", "Slip has no items", "", nil)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"SLIP_EMPTY","message":"Slip has no items"}}`, string(raw))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
		{Field: "status", Message: "This field is required"},
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, []ValidationDetail{{Field: "status", Message: "This field is required"}}, resp.Error.Details["fields"])

	empty := NewValidationErrorResponse("Invalid JSON body", "", nil)
	assert.Nil(t, empty.Error.Details)
}

func TestNewSuccessResponse(t *testing.T) {
	raw, err := json.Marshal(NewSuccessResponse(map[string]int64{"order_id": 3}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"order_id":3}}`, string(raw))
}
