package progress

import "github.com/charmbracelet/lipgloss"

// Shared palette. Exported styles are reused by command output that is not
// line-based progress, such as the doctor table.
var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")

	StepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	OKStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	FailedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	DimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

const (
	stepMark  = "==>"
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
	skipMark  = "[--]"
)
