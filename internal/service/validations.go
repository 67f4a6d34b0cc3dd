package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/pkg/entity"
)

const MinVisionLength = 50

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		validate.RegisterValidation("focus_area", enumValidation(ParseFocusArea))
		validate.RegisterValidation("life_stage", enumValidation(ParseLifeStage))
		validate.RegisterValidation("time_commitment", enumValidation(ParseTimeCommitment))
		validate.RegisterValidation("working_style", enumValidation(ParseWorkingStyle))
		validate.RegisterValidation("resource_level", enumValidation(ParseResourceLevel))
	})
}

func enumValidation[T ~string](parse func(string) (T, bool)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := parse(fl.Field().String())
		return ok
	}
}

// validateStruct runs the validator and converts its field errors into a
// ValidationError keyed by json field name.
func validateStruct(v any) error {
	InitValidator()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.New("validation unexpected error: " + err.Error())
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		name, _, _ := strings.Cut(lowerFirst(fe.Field()), "[")
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = fieldMessage(fe)
	}
	return errorvalues.NewValidationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "select at least " + fe.Param()
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "has an unsupported value"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ValidateVision checks the step 2 predicate.
func ValidateVision(prompt string) error {
	if utf8.RuneCountInString(prompt) < MinVisionLength {
		return errorvalues.NewValidationError(map[string]string{
			"detailedPrompt": "must be at least 50 characters",
		})
	}
	return nil
}

// ValidateSelectors checks the step 3 predicate.
func ValidateSelectors(cs entity.ContextSelectors) error {
	return validateStruct(cs)
}
