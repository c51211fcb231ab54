package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Priority styles
	Emergency lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Notice    lipgloss.Style
	Info      lipgloss.Style
	Debug     lipgloss.Style

	// Report styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Danger  lipgloss.Style
	Muted   lipgloss.Style
}{
	// Priorities - distinctive colors
	Emergency: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Underline(true), // Magenta bold underline
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),                 // Red bold
	Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),                            // Orange
	Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("142")),                            // Yellow-green
	Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),                             // Cyan
	Debug:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),                            // Gray

	// Report
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
}

var priorityNames = [...]string{"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug"}

// PriorityName returns the syslog keyword for a priority, or its number when out of range
func PriorityName(p uint8) string {
	if int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return strconv.Itoa(int(p))
}

// PriorityStyle returns the appropriate style for a syslog priority
func PriorityStyle(p uint8) lipgloss.Style {
	switch {
	case p <= 2:
		return Styles.Emergency
	case p == 3:
		return Styles.Error
	case p == 4:
		return Styles.Warning
	case p == 5:
		return Styles.Notice
	case p == 6:
		return Styles.Info
	default:
		return Styles.Debug
	}
}

// StatusText returns styled status text for the rejected line count
func StatusText(rejected int) string {
	if rejected > 0 {
		return Styles.Danger.Render(strconv.Itoa(rejected) + " MALFORMED LINES SKIPPED")
	}
	return Styles.Success.Render("OK")
}
