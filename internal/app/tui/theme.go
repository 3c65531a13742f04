package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette of the terminal view, in ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	Fare    lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
}

var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("39"),
	BorderColor:      lipgloss.Color("238"),
	HelpText:         lipgloss.Color("241"),

	Fare:    lipgloss.Color("214"),
	Success: lipgloss.Color("114"),
	Error:   lipgloss.Color("203"),
}

func (theme Theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
}

func (theme Theme) faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.FaintText)
}

func (theme Theme) selected() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
}

func (theme Theme) fare() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Fare)
}

func (theme Theme) status(isError bool) lipgloss.Style {
	if isError {
		return lipgloss.NewStyle().Foreground(theme.Error)
	}

	return lipgloss.NewStyle().Foreground(theme.Success)
}

func (theme Theme) panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1)
}

func (theme Theme) help() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.HelpText)
}
