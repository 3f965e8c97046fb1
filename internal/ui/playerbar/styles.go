package playerbar

import "github.com/charmbracelet/lipgloss"

const (
	playSymbol    = "▶"
	pauseSymbol   = "⏸"
	stopSymbol    = "■"
	loadingSymbol = "…"
	errorSymbol   = "!"
	likedSymbol   = "♥"

	volumeSymbol = "\U0001F50A" // 🔊
	muteSymbol   = "\U0001F507" // 🔇

	minProgressBarWidth = 5
)

var (
	barStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	progressFilledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)
