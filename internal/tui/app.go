// Package tui defines the Bubble Tea model for the interactive results view.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/internal/harness"
)

// Config carries dependencies into the view.
type Config struct {
	Ctx      context.Context
	Suite    *harness.Suite
	Options  harness.RunOptions
	OnResult func(v1.RunSummary) // called for every completed run; may be nil
}

// Model is the root Bubble Tea model (Elm architecture).
type Model struct {
	cfg     Config
	keys    Keymap
	styles  Styles
	spinner spinner.Model

	width   int
	running bool
	runs    int
	last    *v1.RunSummary
}

// runDoneMsg carries a finished run.
type runDoneMsg v1.RunSummary

// New constructs a Model. The suite starts running on Init.
func New(cfg Config) *Model {
	if cfg.Ctx == nil {
		cfg.Ctx = context.Background()
	}
	styles := newStyles()
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))
	return &Model{
		cfg:     cfg,
		keys:    defaultKeymap(),
		styles:  styles,
		spinner: sp,
		running: true,
	}
}

// Summary returns the most recent run, if any has completed.
func (m *Model) Summary() (v1.RunSummary, bool) {
	if m.last == nil {
		return v1.RunSummary{}, false
	}
	return *m.last, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Init
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runCmd())
}

// ─────────────────────────────────────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case runDoneMsg:
		sum := v1.RunSummary(msg)
		m.last = &sum
		m.running = false
		m.runs++
		if m.cfg.OnResult != nil {
			m.cfg.OnResult(sum)
		}
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Rerun):
		if m.running {
			return nil
		}
		m.running = true
		return tea.Batch(m.spinner.Tick, m.runCmd())
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// View
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) View() string {
	header := m.styles.Header.Render(fmt.Sprintf("◉ %s", m.cfg.Suite.Name()))

	var body string
	if m.running {
		body = fmt.Sprintf("\n %s Running %d cases…\n", m.spinner.View(), len(m.cfg.Suite.Cases()))
	} else {
		body = m.renderResults()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m *Model) renderResults() string {
	if m.last == nil {
		return ""
	}
	sum := *m.last

	nameW := len("CASE")
	for _, r := range sum.Results {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.TableHeader.Render(fmt.Sprintf("%-*s  %-8s  %s", nameW, "CASE", "OUTCOME", "TIME")))
	b.WriteString("\n")
	for _, r := range sum.Results {
		row := fmt.Sprintf("%-*s  %s  %dms", nameW, r.Name, m.styles.outcome(r.Outcome).Render(fmt.Sprintf("%-8s", r.Outcome)), r.DurationMS)
		b.WriteString(m.styles.TableRow.Render(row))
		b.WriteString("\n")
		for _, detail := range []string{r.Cause, r.Reason} {
			for _, line := range strings.Split(detail, "\n") {
				if line != "" {
					b.WriteString(m.styles.Detail.Render(line))
					b.WriteString("\n")
				}
			}
		}
	}

	verdict := "OK"
	if !sum.OK() {
		verdict = "FAILED"
	}
	status := m.styles.Verdict[sum.OK()].Render(verdict)
	b.WriteString(fmt.Sprintf("\n %s  ran %d, passed %d, failed %d, errored %d (run #%d)\n",
		status, sum.Run, sum.Passed, sum.Failed, sum.Errored, m.runs))
	return b.String()
}

func (m *Model) renderFooter() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, m.styles.FooterKey.Render(h.Key)+" "+h.Desc)
	}
	return m.styles.Footer.Render(strings.Join(parts, " • "))
}

// ─────────────────────────────────────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────────────────────────────────────

// runCmd runs the suite off the UI loop. Cases still execute sequentially.
func (m *Model) runCmd() tea.Cmd {
	ctx, suite, opts := m.cfg.Ctx, m.cfg.Suite, m.cfg.Options
	return func() tea.Msg {
		return runDoneMsg(suite.Run(ctx, opts))
	}
}
