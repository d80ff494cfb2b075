package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/common"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/service"
)

// HandleAPIError is a utility function for consistent error handling across the API
// It ensures error details are only exposed outside release mode
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	logger := logging.GetLogger()
	if status >= http.StatusInternalServerError {
		logger.LogHTTPError(c.Request.Method, c.Request.URL.Path, GetRealIP(c), status, message, err)
	}

	var errorDetails interface{}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		errorDetails = err.Error()
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(code, message, errorDetails))
}

// HandleServiceError maps a service error onto its HTTP status and error code.
// Store failures get a generic message; everything else carries the service message.
func HandleServiceError(c *gin.Context, err error) {
	status, code := ErrorStatus(err)
	message := service.Message(err, http.StatusText(status))
	if status >= http.StatusInternalServerError {
		message = "Something went wrong, please try again"
	}
	HandleAPIError(c, err, status, code, message)
}

// ErrorStatus classifies err by its service kind.
func ErrorStatus(err error) (int, common.ErrorCode) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, common.ErrCodeValidation
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, common.ErrCodeUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, common.ErrCodeForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, common.ErrCodeNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, common.ErrCodeConflict
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, common.ErrCodeServiceUnavailable
	default:
		return http.StatusInternalServerError, common.ErrCodeInternalServer
	}
}
