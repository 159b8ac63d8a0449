// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Stary2001/godot-forwarder/internal/style"
)

// logStyles returns charmbracelet/log styles using the shared palette.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Prefix = style.Prefix
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("DEBU").Foreground(style.ColorMuted)
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("INFO").Bold(true).Foreground(style.ColorHighlight)
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Bold(true).Foreground(style.ColorWarning)
	styles.Levels[log.ErrorLevel] = style.Error.SetString("ERRO")
	styles.Keys["path"] = lipgloss.NewStyle().Foreground(style.ColorHighlight)
	return styles
}
