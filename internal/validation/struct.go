package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// validate returns the shared validator instance
func validate() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("weights_sum", validateWeightsSum)
		structValidator = v
	})
	return structValidator
}

// Struct validates s using its `validate` tags. Failures are returned as
// domain.ErrInvalidConfiguration listing every offending field.
func Struct(s interface{}) error {
	err := validate().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}

	fields := FormatValidationError(err)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfiguration, strings.Join(parts, "; "))
}

// Fields validates s and returns the offending fields, or nil when s is valid
func Fields(s interface{}) map[string]string {
	return FormatValidationError(validate().Struct(s))
}

// FormatValidationError formats validation errors into a field -> message map
// keyed by the namespaced field path
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := fieldPath(e.Namespace())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		case "weights_sum":
			errs[field] = "Weights must sum to 1"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// fieldPath drops the top-level struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return strings.ToLower(namespace)
}

// WeightsSumTolerance is how far a weight table may drift from 1
const WeightsSumTolerance = 1e-6

// validateWeightsSum accepts an empty map or one whose values sum to 1
func validateWeightsSum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Len() == 0 {
		return true
	}
	total := 0.0
	iter := field.MapRange()
	for iter.Next() {
		total += iter.Value().Float()
	}
	return total > 1-WeightsSumTolerance && total < 1+WeightsSumTolerance
}
