package status

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bnema/clickloop-cli/internal/application"
	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	ShowRecovery bool
}

// Report bundles what the CLI shows after a session ends.
type Report struct {
	Session  domain.Statistics
	Recovery application.RecoveryStatistics
}

func renderView(report Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Click Session"),
		s.header.Render(fmt.Sprintf("state: %s", report.Session.State)),
		renderSession(report.Session, s),
	}

	if opts.ShowRecovery {
		lines = append(lines, s.section.Render(renderRecovery(report.Recovery, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(stats domain.Statistics, s styles) string {
	rate := stats.SuccessRate * 100
	parts := []string{
		line(s, "clicks", fmt.Sprintf("%d (%d ok)", stats.TotalClicks, stats.SuccessfulClicks)),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.label.Render("success:"),
			" ",
			renderSuccessBar(rate, 24, s),
			" ",
			s.value.Render(fmt.Sprintf("%3.0f%%", rate)),
		),
		line(s, "duration", formatDuration(stats.Duration)),
		line(s, "rate", fmt.Sprintf("%.1f clicks/s", stats.ClicksPerSecond)),
		line(s, "latency", fmt.Sprintf("%s avg", stats.AverageLatency.Round(time.Microsecond))),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderRecovery(stats application.RecoveryStatistics, s styles) string {
	if stats.TotalFailures == 0 {
		return s.empty.Render("No failures recovered.")
	}

	parts := []string{
		s.title.Render("Recovery"),
		line(s, "failures", fmt.Sprintf("%d", stats.TotalFailures)),
		line(s, "retries", fmt.Sprintf("%d", stats.Retries)),
	}
	if stats.Degradations > 0 {
		parts = append(parts, s.warning.Render(fmt.Sprintf("degraded %d time(s)", stats.Degradations)))
	}

	kinds := make([]string, 0, len(stats.ByKind))
	for kind := range stats.ByKind {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		parts = append(parts, line(s, kind, fmt.Sprintf("%d", stats.ByKind[domain.FailureKind(kind)])))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func line(s styles, label, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(label+":"),
		" ",
		s.value.Render(value),
	)
}

func renderSuccessBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
