package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks configuration correctness. Zero values are accepted
// where Normalize supplies a default.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// 7-bit addresses outside 0x08..0x77 are reserved
	if a := cfg.I2C.Address; a != 0 && (a < 0x08 || a > 0x77) {
		return fmt.Errorf("config: i2c address 0x%X out of range 0x08-0x77", a)
	}

	if cfg.UpdateInterval < 0 {
		return fmt.Errorf("config: update_interval must be > 0, got %s", cfg.UpdateInterval)
	}

	if cfg.Server != nil && (cfg.Server.Port < 0 || cfg.Server.Port > 65535) {
		return fmt.Errorf("config: server port %d out of range", cfg.Server.Port)
	}

	if cfg.Log.Level != "" {
		if _, err := ParseLevel(cfg.Log.Level); err != nil {
			return err
		}
	}

	return nil
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
	return l, nil
}
