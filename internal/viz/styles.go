package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles, rebuilt by applyTheme whenever the theme changes.
var (
	Subtle        lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	KeyHint       lipgloss.Style
	SparkHigh     lipgloss.Style
	SparkMid      lipgloss.Style
	SparkLow      lipgloss.Style
)

func applyTheme(t Theme) {
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(t.Running)
	StatusPaused = lipgloss.NewStyle().Bold(true).Foreground(t.Paused)
	KeyHint = lipgloss.NewStyle().Bold(true).Foreground(t.Hint)
	SparkLow = lipgloss.NewStyle().Foreground(t.Stress[0])
	SparkMid = lipgloss.NewStyle().Foreground(t.Stress[1])
	SparkHigh = lipgloss.NewStyle().Foreground(t.Stress[2])
}

// SparklineChart renders the most recent values as a mini sparkline. High
// values are drawn hot, since the chart tracks edge stress.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	// Sparkline characters from low to high
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}

	return result.String()
}

// Separator is a decorative rule.
func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}
