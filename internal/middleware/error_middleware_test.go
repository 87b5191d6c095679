package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.NewResourceNotFoundError("occupation not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("get: %w", apperrors.ErrPersonNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.NewForbiddenError("only administrators can verify"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{apperrors.NewValidationError("title", "title is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.NewCustomError(apperrors.ErrUploadNotAllowed, "bad folder"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.NewCustomError(apperrors.ErrResourceInUse, "in use"), http.StatusConflict, dto.ErrorCodeResourceInUse},
		{apperrors.ErrPersonAlreadyVerified, http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.NewCustomError(apperrors.ErrImportTooLarge, "too many rows"), http.StatusRequestEntityTooLarge, dto.ErrorCodePayloadTooLarge},
		{&http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, dto.ErrorCodePayloadTooLarge},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, detail := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
		})
	}
}

func TestHandleAPIError_CarriesMessageAndField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/occupations", nil)

	HandleAPIError(c, apperrors.NewValidationError("title", "title must be at most 255 characters"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "title", body.Error.Field)
	assert.Equal(t, "title must be at most 255 characters", body.Error.Message)
	assert.Equal(t, dto.ErrorSeverityWarning, body.Error.Severity)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 26)
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "client-id", w.Header().Get(RequestIDHeader))
}

func TestBindJSON_CustomRules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req dto.CreateReferenceRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	post := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, post(`{"title":"Student"}`))
	assert.Equal(t, http.StatusBadRequest, post(`{"title":"   "}`))
	assert.Equal(t, http.StatusBadRequest, post(`{`))
}
