package handlers

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/collabhub/pkg/errors"
	"github.com/charlesng35/collabhub/pkg/response"
	appValidator "github.com/charlesng35/collabhub/pkg/validator"
)

// normalizer is implemented by request bodies that trim or default their
// fields before validation runs.
type normalizer interface {
	normalize()
}

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}
	return validateBody(c, dest)
}

// bindOptionalJSON behaves like bindAndValidate but accepts an empty body.
func bindOptionalJSON[T any](c *gin.Context, dest *T) bool {
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
			response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
			return false
		}
	}
	return validateBody(c, dest)
}

func validateBody[T any](c *gin.Context, dest *T) bool {
	if n, ok := any(dest).(normalizer); ok {
		n.normalize()
	}
	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, validationError(err))
		return false
	}
	return true
}

func validationError(err error) *appErrors.AppError {
	ve, ok := err.(appValidator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return appErrors.NewBadRequest("invalid request payload")
	}

	fields := make([]appErrors.FieldError, 0, len(ve))
	for _, failure := range ve {
		fields = append(fields, appErrors.FieldError{
			Field:   failure.Field,
			Message: describeFailure(failure),
		})
	}
	return appErrors.NewValidation(fields)
}

func describeFailure(failure appValidator.ValidationError) string {
	field := failure.Field
	switch failure.Tag {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, failure.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, failure.Param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, failure.Param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, failure.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, failure.Param)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	default:
		if failure.Param != "" {
			return fmt.Sprintf("%s failed validation: %s=%s", field, failure.Tag, failure.Param)
		}
		return fmt.Sprintf("%s failed validation: %s", field, failure.Tag)
	}
}

// parseBoolQuery returns nil when the parameter is absent or not a boolean.
func parseBoolQuery(c *gin.Context, key string) *bool {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
