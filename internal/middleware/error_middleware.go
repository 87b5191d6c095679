package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/logger"
)

// ErrorStatus maps an error onto its HTTP status and error detail
func ErrorStatus(err error) (int, *dto.ErrorDetail) {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, apperrors.ErrImportTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge,
			dto.NewErrorDetail(dto.ErrorCodePayloadTooLarge, apperrors.MessageOf(err, "Request too large"))
	case apperrors.Is(err, apperrors.ErrResourceNotFound, apperrors.ErrPersonNotFound, apperrors.ErrUserNotFound):
		return http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.MessageOf(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, apperrors.MessageOf(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest, apperrors.ErrUploadNotAllowed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.MessageOf(err, "Validation failed"))
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Field != "" {
			detail = detail.WithField(custom.Field)
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, apperrors.MessageOf(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrResourceInUse):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceInUse, apperrors.MessageOf(err, "Resource is still in use"))
	case errors.Is(err, apperrors.ErrPersonAlreadyVerified):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Person is already verified")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeConflict, apperrors.MessageOf(err, "Conflict"))
	}

	return http.StatusInternalServerError,
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorStatus(err)
	if status < http.StatusInternalServerError {
		detail.WithSeverity(dto.ErrorSeverityWarning)
	} else {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("requestID", c.GetString(ContextRequestID)).
			Msg("Unhandled API error")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}
