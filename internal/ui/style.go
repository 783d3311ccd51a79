package ui

import "github.com/charmbracelet/lipgloss"

const (
	glyphDone    = "✓"
	glyphPending = "✘"
)

type palette struct {
	done    lipgloss.Style
	pending lipgloss.Style
	tag     lipgloss.Style
	muted   lipgloss.Style
	late    lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{done: plain, pending: plain, tag: plain, muted: plain, late: plain, warning: plain, failure: plain}
	}
	return palette{
		done:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		pending: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		tag:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		late:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
