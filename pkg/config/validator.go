package config

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RegisterCustomValidators registers the config-specific validation tags.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("page_sizes", validatePageSizes); err != nil {
		return err
	}
	return v.RegisterValidation("table_name", validateTableName)
}

// validatePageSizes requires a non-empty list of positive sizes.
func validatePageSizes(fl validator.FieldLevel) bool {
	sizes, ok := fl.Field().Interface().([]int)
	if !ok || len(sizes) == 0 {
		return false
	}
	for _, size := range sizes {
		if size < 1 {
			return false
		}
	}
	return true
}

func validateTableName(fl validator.FieldLevel) bool {
	return tableNamePattern.MatchString(fl.Field().String())
}
