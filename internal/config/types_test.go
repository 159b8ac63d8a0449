// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value ColorScheme
		want  bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"neon", false},
	}
	for _, tt := range tests {
		valid, errs := tt.value.IsValid()
		if valid != tt.want {
			t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidColorScheme) {
			t.Errorf("error should wrap ErrInvalidColorScheme, got %v", errs[0])
		}
	}
}

func TestColorScheme_GlamourStyle(t *testing.T) {
	t.Parallel()

	for scheme, want := range map[ColorScheme]string{
		ColorSchemeAuto:  "auto",
		ColorSchemeDark:  "dark",
		ColorSchemeLight: "light",
		"":               "auto",
	} {
		if got := scheme.GlamourStyle(); got != want {
			t.Errorf("ColorScheme(%q).GlamourStyle() = %q, want %q", scheme, got, want)
		}
	}
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value     LogLevel
		wantValid bool
		wantLevel log.Level
	}{
		{LogLevelDebug, true, log.DebugLevel},
		{LogLevelInfo, true, log.InfoLevel},
		{LogLevelWarn, true, log.WarnLevel},
		{LogLevelError, true, log.ErrorLevel},
		{"loud", false, log.InfoLevel},
	}
	for _, tt := range tests {
		valid, errs := tt.value.IsValid()
		if valid != tt.wantValid {
			t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.value, valid, tt.wantValid)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidLogLevel) {
			t.Errorf("error should wrap ErrInvalidLogLevel, got %v", errs[0])
		}
		if got := tt.value.Level(); got != tt.wantLevel {
			t.Errorf("LogLevel(%q).Level() = %v, want %v", tt.value, got, tt.wantLevel)
		}
	}
}

func TestAckKey_IsValid(t *testing.T) {
	t.Parallel()

	for key, want := range map[AckKey]bool{"+": true, "é": true, "": false, "ab": false} {
		valid, errs := key.IsValid()
		if valid != want {
			t.Errorf("AckKey(%q).IsValid() = %v, want %v", key, valid, want)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidAckKey) {
			t.Errorf("error should wrap ErrInvalidAckKey, got %v", errs[0])
		}
	}
}

func TestExecutablePrefix_IsValid(t *testing.T) {
	t.Parallel()

	for prefix, want := range map[ExecutablePrefix]bool{
		"godot-":  true,
		"engine_": true,
		"":        false,
		"../x":    false,
		`a\b`:     false,
	} {
		if valid, _ := prefix.IsValid(); valid != want {
			t.Errorf("ExecutablePrefix(%q).IsValid() = %v, want %v", prefix, valid, want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.AckKey = "ok"
	cfg.UI.ColorScheme = "neon"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, ErrInvalidAckKey) || !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("Validate() = %v, want both field errors reachable", err)
	}

	var ice *InvalidConfigError
	if !errors.As(err, &ice) || len(ice.FieldErrors) != 2 {
		t.Errorf("want 2 field errors, got %v", err)
	}
}

func TestConfig_EffectiveLogLevel(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LogLevel = LogLevelWarn
	if got := cfg.EffectiveLogLevel(); got != log.WarnLevel {
		t.Errorf("EffectiveLogLevel() = %v, want warn", got)
	}
	cfg.UI.Verbose = true
	if got := cfg.EffectiveLogLevel(); got != log.DebugLevel {
		t.Errorf("verbose EffectiveLogLevel() = %v, want debug", got)
	}
}
