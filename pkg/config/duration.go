package config

import (
	"fmt"
	"time"
)

// Duration is a time.Duration that decodes from TOML strings, used by the
// probe timing keys ("10s", "500ms", "1m"). Probe budgets can never be
// negative, so parsing rejects that outright.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("probe duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("probe duration %q: must not be negative", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
