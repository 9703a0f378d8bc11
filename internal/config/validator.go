package config

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
)

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Register custom validation for save-slot names
	_ = v.RegisterValidation("profile", validateProfile)

	return v
}

// Validate checks a loaded configuration and reports every invalid field
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), describe(e)))
	}
	sort.Strings(msgs)

	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Warnings returns non-fatal notes about a valid configuration
func Warnings(cfg *Config) []string {
	var warnings []string

	if cfg.Environment == "prod" && cfg.StoreDriver == StoreDriverFile {
		warnings = append(warnings, "STORE_DRIVER=file in production keeps saves on local disk only")
	}

	if strings.HasPrefix(cfg.BaseURL, "http://") && cfg.Environment == "prod" {
		warnings = append(warnings, "STATE_BASE_URL uses plain http in production")
	}

	if cfg.CacheSize == 0 && cfg.StoreDriver != StoreDriverFile {
		warnings = append(warnings, "CACHE_SIZE=0 disables the state cache")
	}

	return warnings
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "ip":
		return "must be an IP address"
	case "profile":
		return "may only contain letters, digits, '_' and '-'"
	default:
		return "invalid value"
	}
}

// Custom validation function for profile names
func validateProfile(fl validator.FieldLevel) bool {
	return profilePattern.MatchString(fl.Field().String())
}
