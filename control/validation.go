// control/validation.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"net"

	"github.com/go-playground/validator/v10"

	"github.com/momentics/hioload-tcp/api"
)

var validate = validator.New()

// Validate checks struct tags, then rules that tags cannot express.
// Failures are api.ErrInvalidArgument errors.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	if err := validateCustomRules(cfg); err != nil {
		return err
	}
	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Addr); err != nil {
			return api.InvalidArgument("metrics.addr: %v", err)
		}
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		e := validationErrs[0]
		return api.InvalidArgument("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return api.InvalidArgument("%v", err)
}
