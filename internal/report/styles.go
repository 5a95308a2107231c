// Package report renders finished trip reports for terminal and file output.
package report

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5FAFFF")
	// SuccessColor marks submission-ready trips.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor marks trips needing manual review.
	WarningColor = lipgloss.Color("#FFE66D")
	// SubtleColor marks less prominent detail.
	SubtleColor = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	readyStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	reviewStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	tripBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
)
