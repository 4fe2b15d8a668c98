package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Common styles that can be used across the application
var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	CountStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	TemplateStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	PatternStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ScopeStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	DefinitionStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// TemplateText styles a template class name
func TemplateText(text string) string {
	return TemplateStyle.Render(text)
}

// PatternText styles a script file pattern
func PatternText(text string) string {
	return PatternStyle.Render(text)
}

// ScopeText styles an expected-location scope
func ScopeText(text string) string {
	return ScopeStyle.Render(text)
}

// DefinitionText styles a definition name
func DefinitionText(text string) string {
	return DefinitionStyle.Render(text)
}

// Validation-specific styling functions

// ValidText styles valid status text (green)
func ValidText(text string) string {
	return DefinitionStyle.Render(text)
}

// ErrorText styles error text (red)
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// SummaryText styles summary information (dark gray)
func SummaryText(text string) string {
	return BranchStyle.Render(text)
}

// CountText styles count numbers (cyan)
func CountText(text string) string {
	return CountStyle.Render(text)
}
