// SPDX-License-Identifier: MPL-2.0

// Package style holds the color palette and lipgloss styles shared by log
// output and the failure screen.
package style

import "github.com/charmbracelet/lipgloss"

const (
	// ColorPrimary is purple, used for the log prefix.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for debug output and hints.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red, used for errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for info lines and paths.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// Prefix renders the logger prefix.
	Prefix = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	// Error is for error messages and failure titles.
	Error = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorError)

	// Hint is for secondary instructions such as the exit prompt.
	Hint = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
)
