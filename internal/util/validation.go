package util

import (
	"errors"
	"fmt"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"

	"github.com/go-playground/validator/v10"
)

// ValidateStruct runs the struct's validate tags and reports the first
// failing field as a ValidationError.
func ValidateStruct(validate *validator.Validate, payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	field := fieldErrs[0]
	return &model.ValidationError{
		Code:    constant.ERR_VALIDATION_CODE,
		Message: fieldMessage(field),
		Param:   field.Field(),
	}
}

func fieldMessage(field validator.FieldError) string {
	switch field.Tag() {
	case "required":
		return fmt.Sprintf("%s is required to not be empty", field.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field.Field(), field.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field.Field(), field.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", field.Field())
	case "gt", "gte":
		return fmt.Sprintf("%s is invalid", field.Field())
	}

	return fmt.Sprintf("%s failed on %s", field.Field(), field.Tag())
}
