package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header     lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Identifier lipgloss.Style
}

// colorProfile returns the profile for w. Non-terminals and NO_COLOR get ASCII.
func colorProfile(w io.Writer, isTTY bool) termenv.Profile {
	if !isTTY || os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// NewStyles builds styles bound to a lipgloss renderer for w.
func NewStyles(w io.Writer, profile termenv.Profile) *Styles {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(profile)

	return &Styles{
		Header:     lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success:    lr.NewStyle().Foreground(lipgloss.Color("10")),
		Error:      lr.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:    lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:       lr.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:      lr.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:       lr.NewStyle().Bold(true),
		Identifier: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	}
}
