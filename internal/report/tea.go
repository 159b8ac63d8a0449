// SPDX-License-Identifier: MPL-2.0

package report

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Stary2001/godot-forwarder/internal/style"
)

const keyCtrlC = "ctrl+c"

var bodyStyle = lipgloss.NewStyle().PaddingLeft(1)

type (
	// TeaReporter draws the failure with bubbletea and quits on the
	// acknowledgement key or ctrl+c.
	TeaReporter struct {
		in      io.Reader
		out     io.Writer
		key     string
		options []tea.ProgramOption
	}

	failureModel struct {
		failure Failure
		key     string
		width   int
		acked   bool
	}
)

// NewTeaReporter creates a TeaReporter.
func NewTeaReporter(in io.Reader, out io.Writer, key string) *TeaReporter {
	return &TeaReporter{in: in, out: out, key: key}
}

// Report implements Reporter.
func (r *TeaReporter) Report(ctx context.Context, f Failure) error {
	opts := append([]tea.ProgramOption{
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
		tea.WithContext(ctx),
	}, r.options...)

	p := tea.NewProgram(newFailureModel(f, r.key), opts...)
	if _, err := p.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	return nil
}

func newFailureModel(f Failure, key string) *failureModel {
	return &failureModel{failure: f, key: key}
}

// Init implements tea.Model.
func (m *failureModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *failureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.isAck(msg) {
			m.acked = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// isAck reports whether msg carries the acknowledgement key. Buffered input
// and pastes arrive as one KeyRunes message, so every rune is checked.
func (m *failureModel) isAck(msg tea.KeyMsg) bool {
	if s := msg.String(); s == m.key || s == keyCtrlC {
		return true
	}
	if msg.Type != tea.KeyRunes {
		return false
	}
	key := []rune(m.key)
	return len(key) == 1 && slices.Contains(msg.Runes, key[0])
}

// View implements tea.Model.
func (m *failureModel) View() string {
	if m.acked {
		return ""
	}

	lines := []string{style.Error.Render(m.failure.Title)}
	if m.failure.Body != "" {
		lines = append(lines, "", bodyStyle.Render(strings.TrimRight(m.failure.Body, "\n")))
	}
	lines = append(lines, "", style.Hint.Render(hint(m.key)))

	view := strings.Join(lines, "\n")
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view + "\n"
}
