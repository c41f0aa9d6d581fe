package tui

import (
	"fmt"
	"os"
	"strings"

	"memorg/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	EventMsg struct {
		Event domain.Event
	}
	DoneMsg struct {
		Summary domain.Summary
		Err     error
	}
)

const logTail = 8

// Config for the TUI
type Config struct {
	ManifestPath string
	OutputRoot   string
	DryRun       bool
	Verbose      bool
	// Events carries runner progress into the model; the worker
	// goroutine owns the channel and closes it when the run ends.
	Events <-chan tea.Msg
	// Cancel requests cooperative cancellation of the worker.
	Cancel func()
}

// Model is the main TUI model
type Model struct {
	config      Config
	Phase       Phase
	Summary     domain.Summary
	Err         error
	spinner     spinner.Model
	progress    progress.Model
	processed   int
	total       int
	currentFile string
	logLines    []string
	cancelling  bool
	Quitting    bool
	width       int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseRunning,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.config.Events))
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.Phase == PhaseRunning {
				m.requestCancel()
				return m, nil
			}
			m.Quitting = true
			return m, tea.Quit
		case "c":
			if m.Phase == PhaseRunning {
				m.requestCancel()
			}
			return m, nil
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				m.Quitting = true
				return m, tea.Quit
			}
		}

	case EventMsg:
		m.processed = msg.Event.Processed
		m.total = msg.Event.Total
		m.currentFile = msg.Event.File
		m.logLines = appendLog(m.logLines, formatEventLine(msg.Event))
		return m, waitForEvent(m.config.Events)

	case DoneMsg:
		m.Summary = msg.Summary
		if msg.Err != nil {
			m.Err = msg.Err
			m.Phase = PhaseError
		} else {
			m.Phase = PhaseDone
		}
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m *Model) requestCancel() {
	if m.cancelling {
		return
	}
	m.cancelling = true
	if m.config.Cancel != nil {
		m.config.Cancel()
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseRunning:
		b.WriteString(m.renderRunning())
	case PhaseDone:
		b.WriteString(m.renderLog())
		b.WriteString("\n")
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderLog())
		b.WriteString("\n")
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("🗂  Memorg")
	subtitle := subtitleStyle.Render("Sort exported memories by date")

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Manifest: %s", iconFolder, shortenPath(m.config.ManifestPath))),
		dimStyle.Render(fmt.Sprintf("%s Output:   %s", iconFolder, shortenPath(m.config.OutputRoot))),
	)
}

func (m Model) renderRunning() string {
	var b strings.Builder

	label := "Organizing..."
	if m.cancelling {
		label = warningStyle.Render("Cancelling...")
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", m.spinner.View(), label))

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))

	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	percentStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d files", m.processed, m.total)),
		percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.currentFile)))
	}

	b.WriteString("\n")
	b.WriteString(m.renderLog())

	return b.String()
}

func (m Model) renderLog() string {
	if len(m.logLines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Recent"))
	b.WriteString("\n\n")
	for _, line := range m.logLines {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	s := m.Summary
	if s.WouldCopy > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Would copy:"), successStyle.Render(fmt.Sprintf("%s %d", iconCopied, s.WouldCopy))))
	} else {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Copied:"), successStyle.Render(fmt.Sprintf("%s %d", iconCopied, s.Copied))))
	}

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	if s.AlreadyPlaced > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Already in place:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, s.AlreadyPlaced))))
	}
	if s.MissingSource > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Missing sources:"), warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, s.MissingSource))))
	}
	if s.UnparseableDate > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("No usable date:"), warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, s.UnparseableDate))))
	}
	if s.CopyFailed > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Copy failures:"), errorStyle.Render(fmt.Sprintf("%s %d", iconError, s.CopyFailed))))
	}
	if s.Cancelled > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Cancelled:"), dimStyle.Render(fmt.Sprintf("%s %d", iconCancelled, s.Cancelled))))
	}

	if m.config.DryRun {
		b.WriteString("\n")
		b.WriteString(highlightBoxStyle.Render("🔍 Dry Run - No files were copied"))
	}

	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseRunning:
		help = "Press c or q to cancel"
	case PhaseDone, PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

func formatEventLine(e domain.Event) string {
	switch e.Outcome {
	case domain.OutcomeCopied:
		return fmt.Sprintf("%s %s %s %s", successStyle.Render(iconCopied), fileNameStyle.Render(e.File), iconArrow, dateStyle.Render(e.Target))
	case domain.OutcomeAlreadyPlaced:
		return fmt.Sprintf("%s %s", dateStyle.Render(iconSkipped), dateStyle.Render(e.File+" already in place"))
	case domain.OutcomeWouldCopy:
		return fmt.Sprintf("%s %s %s %s", dateStyle.Render(iconSkipped), fileNameStyle.Render(e.File), iconArrow, dateStyle.Render(e.Target))
	case domain.OutcomeMissingSource:
		return fmt.Sprintf("%s %s", warningStyle.Render(iconWarning), warningStyle.Render("missing: "+e.File))
	case domain.OutcomeUnparseableDate:
		return fmt.Sprintf("%s %s", warningStyle.Render(iconWarning), warningStyle.Render("no date: "+e.File))
	case domain.OutcomeCopyFailed:
		return fmt.Sprintf("%s %s", errorStyle.Render(iconError), errorStyle.Render(e.File+": "+e.Err.Error()))
	case domain.OutcomeCancelled:
		return fmt.Sprintf("%s %s", dateStyle.Render(iconCancelled), dateStyle.Render("cancelled: "+e.File))
	default:
		return e.File
	}
}

func appendLog(lines []string, line string) []string {
	lines = append(lines, line)
	if len(lines) > logTail {
		lines = lines[len(lines)-logTail:]
	}
	return lines
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
