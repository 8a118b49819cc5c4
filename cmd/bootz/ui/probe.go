package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Probe runs fn behind an animated spinner on stderr. It exists for the
// short host probes (doctor checks, artifact inspection) whose only
// slow part is waiting on the network or the disk. Non-interactive runs
// execute fn synchronously with no output. Ctrl+C cancels the context
// passed to fn.
func Probe(ctx context.Context, msg string, fn func(ctx context.Context) error) error {
	if IsNoInteraction() {
		return fn(ctx)
	}

	fnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := &probeModel{
		spin: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(AccentStyle),
		),
		msg:     msg,
		started: time.Now(),
	}
	prog := tea.NewProgram(m,
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)

	go func() {
		m.err = fn(fnCtx)
		prog.Send(probeDoneMsg{})
	}()

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("probe ui: %w", err)
	}
	if m.interrupted {
		cancel()
		return context.Canceled
	}
	return m.err
}

type probeDoneMsg struct{}

type probeModel struct {
	spin        spinner.Model
	msg         string
	started     time.Time
	err         error
	finished    bool
	interrupted bool
}

func (m *probeModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m *probeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case probeDoneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View shows the probe message; a probe stuck on a firewalled NTP pool
// also gets an elapsed counter so the wait is visibly progressing.
func (m *probeModel) View() string {
	if m.finished || m.interrupted {
		return ""
	}
	line := m.spin.View() + " " + m.msg
	if elapsed := time.Since(m.started); elapsed >= 2*time.Second {
		line += " " + Muted(fmt.Sprintf("(%ds)", int(elapsed.Seconds())))
	}
	return line + "\n"
}
