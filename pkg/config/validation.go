package config

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags plus custom rules
// that cannot be expressed in tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return validateCustomRules(cfg)
}

// validateCustomRules checks the type-specific locator sections, which are
// free-form maps and thus out of reach of struct tags.
func validateCustomRules(cfg *Config) error {
	if cfg.Locator.Type != "http" {
		return nil
	}

	endpoint, ok := cfg.Locator.HTTP["endpoint"].(string)
	if !ok || endpoint == "" {
		return fmt.Errorf("locator.http: endpoint is required")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("locator.http: invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("locator.http: endpoint %q must use http or https", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("locator.http: endpoint %q has no host", endpoint)
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
