// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidAckKey is returned when an AckKey is not exactly one character.
	ErrInvalidAckKey = errors.New("invalid acknowledgement key")
	// ErrInvalidExecutablePrefix is returned for an empty or path-like prefix.
	ErrInvalidExecutablePrefix = errors.New("invalid executable prefix")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError wraps ErrInvalidColorScheme.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written to the diagnostic log.
	LogLevel string

	// InvalidLogLevelError wraps ErrInvalidLogLevel.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// AckKey is the single key that dismisses the failure screen.
	AckKey string

	// InvalidAckKeyError wraps ErrInvalidAckKey.
	InvalidAckKeyError struct {
		Value AckKey
	}

	// ExecutablePrefix starts every runtime file name.
	ExecutablePrefix string

	// InvalidExecutablePrefixError wraps ErrInvalidExecutablePrefix.
	InvalidExecutablePrefixError struct {
		Value ExecutablePrefix
	}

	// InvalidConfigError collects field-level validation errors and wraps
	// ErrInvalidConfig.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the forwarder configuration.
	Config struct {
		// SearchDir is where runtimes are looked up. Empty means the
		// working directory.
		SearchDir string `json:"search_dir" mapstructure:"search_dir"`
		// ExecutablePrefix and ExecutableExtension frame the version in
		// runtime file names.
		ExecutablePrefix    ExecutablePrefix `json:"executable_prefix" mapstructure:"executable_prefix"`
		ExecutableExtension string           `json:"executable_extension" mapstructure:"executable_extension"`
		// AckKey dismisses the failure screen.
		AckKey AckKey `json:"ack_key" mapstructure:"ack_key"`
		// LogLevel sets the diagnostic log level.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// UI configures the failure screen and log verbosity.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose forces debug logging and shows error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the markdown rendering style.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SearchDir:           "",
		ExecutablePrefix:    "godot-",
		ExecutableExtension: ".nro",
		AckKey:              "+",
		LogLevel:            LogLevelInfo,
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// GlamourStyle returns the glamour standard style for the scheme.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark, ColorSchemeLight:
		return string(c)
	default:
		return string(ColorSchemeAuto)
	}
}

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts to a charmbracelet/log level. Invalid values map to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid returns whether the key is exactly one character.
func (k AckKey) IsValid() (bool, []error) {
	if utf8.RuneCountInString(string(k)) != 1 {
		return false, []error{&InvalidAckKeyError{Value: k}}
	}
	return true, nil
}

func (e *InvalidAckKeyError) Error() string {
	return fmt.Sprintf("invalid acknowledgement key %q (must be a single character)", e.Value)
}

func (e *InvalidAckKeyError) Unwrap() error { return ErrInvalidAckKey }

// IsValid rejects empty prefixes and prefixes containing path separators.
func (p ExecutablePrefix) IsValid() (bool, []error) {
	if p == "" || strings.ContainsAny(string(p), `/\`) {
		return false, []error{&InvalidExecutablePrefixError{Value: p}}
	}
	return true, nil
}

func (e *InvalidExecutablePrefixError) Error() string {
	return fmt.Sprintf("invalid executable prefix %q (must be a non-empty file name prefix)", e.Value)
}

func (e *InvalidExecutablePrefixError) Unwrap() error { return ErrInvalidExecutablePrefix }

// Validate checks every typed field.
func (c *Config) Validate() error {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.ExecutablePrefix.IsValid,
		c.AckKey.IsValid,
		c.LogLevel.IsValid,
		c.UI.ColorScheme.IsValid,
	} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// EffectiveLogLevel is the log level after ui.verbose is applied.
func (c *Config) EffectiveLogLevel() log.Level {
	if c.UI.Verbose {
		return log.DebugLevel
	}
	return c.LogLevel.Level()
}

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, fe := range e.FieldErrors {
		msgs[i] = fe.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
