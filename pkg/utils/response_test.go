package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"maintenance-system/pkg/types"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponsePagination(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/requests?withPagination=true&limit=2&page=2", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	err := SuccessResponse(ctx, []string{"a", "b"}, "OK", http.StatusOK, 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Status bool `json:"status"`
		Body   struct {
			List       []string         `json:"list"`
			Pagination types.Pagination `json:"pagination"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Status)
	assert.Equal(t, []string{"a", "b"}, envelope.Body.List)
	assert.Equal(t, types.Pagination{TotalCount: 5, Page: 2, Limit: 2, TotalPages: 3}, envelope.Body.Pagination)
}

func TestSuccessResponseWithoutPagination(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, SuccessResponse(ctx, map[string]int{"id": 1}, "OK", http.StatusOK, 7))

	var envelope struct {
		Body map[string]int `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, map[string]int{"id": 1}, envelope.Body)
}
