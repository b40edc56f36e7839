// Package tui provides the interactive lookup session.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/pulvis/internal/render"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(render.ColorPrimary).
			Background(render.ColorBg).
			Padding(0, 1)

	ModeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(render.ColorAccent).
			Padding(0, 1)

	FlagStyle = lipgloss.NewStyle().
			Foreground(render.ColorSecondary)

	HelpStyle = lipgloss.NewStyle().
			Foreground(render.ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(render.ColorPrimary).
			Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(render.ColorAccent).
			Bold(true).
			Italic(true)

	DividerStyle = lipgloss.NewStyle().
			Foreground(render.ColorBorder)
)
