// File: client/client.go
// Package client dials hioload-tcp servers with retry and performs one
// request/response exchange per connection.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jpillora/backoff"

	"github.com/momentics/hioload-tcp/api"
	"github.com/momentics/hioload-tcp/internal/logger"
	"github.com/momentics/hioload-tcp/transport/tcp"
)

// Config controls connect retries.
type Config struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1"`
	MinBackoff  time.Duration `mapstructure:"min_backoff" validate:"gt=0"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff" validate:"gtefield=MinBackoff"`
	Factor      float64       `mapstructure:"factor" validate:"gte=1"`
	Jitter      bool          `mapstructure:"jitter"`
}

// DefaultConfig returns five attempts with delays growing from 50ms to 1s.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		MinBackoff:  50 * time.Millisecond,
		MaxBackoff:  time.Second,
		Factor:      2,
		Jitter:      true,
	}
}

var validate = validator.New()

// Validate reports the first invalid field as api.ErrInvalidArgument.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			e := errs[0]
			return api.InvalidArgument("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
		return api.InvalidArgument("%v", err)
	}
	return nil
}

// Dial opens a connection to target, retrying system errors with
// exponential backoff until an attempt succeeds, ctx is done or
// cfg.MaxAttempts is spent. Validation errors are not retried.
func Dial(ctx context.Context, target tcp.Endpoint, cfg Config) (*tcp.Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &backoff.Backoff{
		Min:    cfg.MinBackoff,
		Max:    cfg.MaxBackoff,
		Factor: cfg.Factor,
		Jitter: cfg.Jitter,
	}
	conn := tcp.NewConnection(target)

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lastErr = conn.Open()
		if lastErr == nil {
			return conn, nil
		}
		if !errors.Is(lastErr, api.ErrSystem) || attempt == cfg.MaxAttempts {
			break
		}

		d := b.Duration()
		logger.Debug("dial %s: attempt %d failed: %v; retrying in %s", target, attempt, lastErr, d)
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, fmt.Errorf("dial %s: %w", target, lastErr)
}

// Exchange sends msg, disables sending and waits for the reply. The
// connection is left active; the caller terminates it.
func Exchange(conn *tcp.Connection, msg tcp.MessageBuffer) (tcp.MessageBuffer, error) {
	if err := conn.SendMessage(msg); err != nil {
		return tcp.MessageBuffer{}, err
	}
	if err := conn.DisableSend(); err != nil {
		return tcp.MessageBuffer{}, err
	}
	return conn.ReceiveMessage()
}
