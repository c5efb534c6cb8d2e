package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the palette of the sandbox panel. Every style in styles.go is
// derived from the current theme, so switching themes recolours the whole
// view.
type Theme struct {
	Name    string
	Canvas  lipgloss.Color // points and edges
	Hint    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	// Stress colours the sparkline from slack to strained.
	Stress [3]lipgloss.Color
}

var themes = []Theme{
	{
		Name:    "neon",
		Canvas:  "#40e0ff",
		Hint:    "#20b0b8",
		Muted:   "#5e5e7a",
		Running: "#3cf59a",
		Paused:  "#f5b03c",
		Stress:  [3]lipgloss.Color{"#3cf59a", "#f0d23a", "#f5493c"},
	},
	{
		Name:    "phosphor",
		Canvas:  "#33ff66",
		Hint:    "#22bb44",
		Muted:   "#1f5a2c",
		Running: "#99ffaa",
		Paused:  "#d8ff66",
		Stress:  [3]lipgloss.Color{"#1f8a3a", "#66dd66", "#ccff99"},
	},
	{
		Name:    "chalk",
		Canvas:  "#f2f2f2",
		Hint:    "#7aa7d9",
		Muted:   "#8a8a8a",
		Running: "#f2f2f2",
		Paused:  "#d9a55a",
		Stress:  [3]lipgloss.Color{"#8a8a8a", "#c8c8c8", "#ffffff"},
	},
}

// CurrentTheme is the active palette. Change it with SetTheme.
var CurrentTheme = themes[0]

func init() {
	applyTheme(CurrentTheme)
}

// SetTheme activates the named theme and rebuilds the shared styles. It
// reports false and keeps the current theme for an unknown name.
func SetTheme(name string) bool {
	for _, t := range themes {
		if t.Name == name {
			CurrentTheme = t
			applyTheme(t)
			return true
		}
	}
	return false
}

// NextTheme cycles to the theme after the current one.
func NextTheme() Theme {
	for i, t := range themes {
		if t.Name == CurrentTheme.Name {
			SetTheme(themes[(i+1)%len(themes)].Name)
			break
		}
	}
	return CurrentTheme
}

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
