// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bimadewantoro/moneymate/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4ECDC4") // Teal
	// SuccessColor indicates healthy budgets and positive trends.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates budgets approaching their limit.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// DangerColor indicates budgets close to or over their limit.
	DangerColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats errors and over-budget amounts.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1D3"))

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
)

// TierStyle returns the style matching a budget tier, so every surface
// colors budget health the same way.
func TierStyle(tier model.BudgetTier) lipgloss.Style {
	switch tier {
	case model.BudgetSafe:
		return SuccessStyle
	case model.BudgetWarning:
		return WarningStyle
	default:
		return ErrorStyle
	}
}
