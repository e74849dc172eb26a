package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"selling/internal/apperrors"
	"selling/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validationMessages translates validator errors into field -> messages.
func validationMessages(err error) map[string][]string {
	out := make(map[string][]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["non_field_errors"] = []string{err.Error()}
		return out
	}
	for _, e := range verrs {
		out[e.Field()] = append(out[e.Field()], fieldMessage(e))
	}
	return out
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(e.Value()))
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}

// parseAndValidate binds the JSON body into req and validates it. It writes
// the 400 response itself and reports false when the request was rejected.
func parseAndValidate(c *fiber.Ctx, v *validator.Validate, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		logger.Log.Debug("invalid request body", zap.String("path", c.Path()), zap.Error(err))
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := v.Struct(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(validationMessages(err))
	}
	return true, nil
}

// parseID reads the :id route parameter. Ids that cannot exist answer 404.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// notFound answers 404 with an empty body.
func notFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return nil
}

// respondError maps a service error onto an HTTP response. Uniqueness
// violations answer 400 like any other rejected field.
func respondError(c *fiber.Ctx, err error) error {
	var uniq *apperrors.UniquenessError
	switch {
	case apperrors.IsNotFound(err):
		return notFound(c)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	case errors.As(err, &uniq):
		return c.Status(fiber.StatusBadRequest).JSON(map[string][]string{uniq.Field: {uniq.Error()}})
	}
	if ve, ok := apperrors.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(ve.Fields)
	}

	logger.Log.Error("request failed", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
