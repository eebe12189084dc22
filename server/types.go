// File: server/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/momentics/hioload-tcp/api"
)

// Config holds the listener parameters.
type Config struct {
	// Port to bind on the IPv4 wildcard address; 0 lets the kernel choose.
	Port int `mapstructure:"port" validate:"min=0,max=65535"`

	// Backlog is the listen queue length passed to listen(2).
	Backlog int `mapstructure:"backlog" validate:"min=1"`

	// PollInterval bounds how long the acceptor waits for readiness before
	// re-checking the shutdown flag. It is also the shutdown latency.
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`

	// ReuseAddr sets SO_REUSEADDR so a restarted server can rebind at once.
	ReuseAddr bool `mapstructure:"reuse_addr"`
}

// DefaultConfig returns the defaults: kernel-chosen port, backlog 1, 50ms
// poll interval, address reuse on.
func DefaultConfig() Config {
	return Config{
		Port:         0,
		Backlog:      1,
		PollInterval: 50 * time.Millisecond,
		ReuseAddr:    true,
	}
}

var validate = validator.New()

// Validate checks field ranges and reports the first violation as an
// api.ErrInvalidArgument error.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		return api.InvalidArgument("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return api.InvalidArgument("%s", fmt.Sprint(err))
}
