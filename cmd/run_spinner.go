package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/clickloop-cli/internal/application"
	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sessionViewRefresh = 200 * time.Millisecond

type sessionStatsMsg domain.Statistics

type sessionViewModel struct {
	spinner   spinner.Model
	scheduler *application.Scheduler
	stats     domain.Statistics
	done      bool

	pausedStyle lipgloss.Style
	statStyle   lipgloss.Style
}

func newSessionViewModel(scheduler *application.Scheduler) sessionViewModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return sessionViewModel{
		spinner:     s,
		scheduler:   scheduler,
		stats:       scheduler.Statistics(),
		pausedStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		statStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func pollSessionStats(scheduler *application.Scheduler) tea.Cmd {
	return tea.Tick(sessionViewRefresh, func(time.Time) tea.Msg {
		return sessionStatsMsg(scheduler.Statistics())
	})
}

func (m sessionViewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, pollSessionStats(m.scheduler))
}

func (m sessionViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sessionStatsMsg:
		m.stats = domain.Statistics(msg)
		if m.stats.State == domain.SessionStopped {
			m.done = true
			return m, tea.Quit
		}
		return m, pollSessionStats(m.scheduler)
	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			m.scheduler.Pause()
		case "r":
			m.scheduler.Resume()
		case "q", "ctrl+c":
			m.scheduler.Stop()
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m sessionViewModel) View() string {
	if m.done {
		return ""
	}

	head := fmt.Sprintf("%s clicking", m.spinner.View())
	if m.stats.State == domain.SessionPaused {
		head = m.pausedStyle.Render("⏸ paused")
	}

	detail := fmt.Sprintf("%d clicks · %.1f/s · %s elapsed · p pause · r resume · q quit",
		m.stats.TotalClicks, m.stats.ClicksPerSecond, m.stats.Duration.Round(time.Second))

	return fmt.Sprintf("%s  %s\n", head, m.statStyle.Render(detail))
}

func runSessionView(ctx context.Context, output io.Writer, scheduler *application.Scheduler) error {
	p := tea.NewProgram(
		newSessionViewModel(scheduler),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("session view: %w", err)
	}

	return nil
}
