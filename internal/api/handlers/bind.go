package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/osa911/hostelhub/internal/api/dto/common"
	"github.com/osa911/hostelhub/internal/api/validation"
)

// abortBind answers a request whose body or query failed to bind
func abortBind(c *gin.Context, err error, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(
			common.ErrCodeValidation, "Validation failed", validation.FormatValidationError(err)))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, message, nil))
}
