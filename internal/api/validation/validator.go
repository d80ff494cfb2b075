package validation

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/osa911/hostelhub/internal/api/dto/common"
	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/models"
)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"period":          validatePeriod,
		"roomtype":        validateRoomType,
		"complaintstatus": validateComplaintStatus,
		"role":            validateRole,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// RegisterWithGin installs the custom rules on gin's binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return RegisterValidators(v)
}

func validatePeriod(fl validator.FieldLevel) bool {
	_, err := billing.ParsePeriod(fl.Field().String())
	return err == nil
}

func validateRoomType(fl validator.FieldLevel) bool {
	return models.RoomType(fl.Field().String()).Valid()
}

func validateComplaintStatus(fl validator.FieldLevel) bool {
	return models.ComplaintStatus(fl.Field().String()).Valid()
}

func validateRole(fl validator.FieldLevel) bool {
	return models.UserRole(fl.Field().String()).Valid()
}

var tagMessages = map[string]string{
	"required":        "is required",
	"email":           "must be a valid email address",
	"min":             "is too short",
	"max":             "is too long",
	"period":          "must be a period like \"October 2025\"",
	"roomtype":        "must be Double-Sharing or Triple-Sharing",
	"complaintstatus": "must be Pending, In Progress or Resolved",
	"role":            "must be student or admin",
	"datetime":        "must be a date like 2025-10-01",
}

// FormatValidationError formats validation errors into a user-friendly response.
// Errors that are not field validation failures, such as malformed JSON, yield nil.
func FormatValidationError(err error) []common.ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make([]common.ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		msg, ok := tagMessages[e.Tag()]
		if !ok {
			msg = "is invalid"
		}
		out = append(out, common.ValidationError{
			Field:   e.Field(),
			Message: msg,
			Value:   e.Param(),
		})
	}
	return out
}
