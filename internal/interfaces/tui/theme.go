package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// Styles estilos lipgloss del painel (paleta de 256 colores).
type Styles struct {
	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Label       lipgloss.Style
	Faint       lipgloss.Style
	Cursor      lipgloss.Style
	Badge       lipgloss.Style
	Dropdown    lipgloss.Style
	Panel       lipgloss.Style
	Open        lipgloss.Style
	Closed      lipgloss.Style
	Revenue     lipgloss.Style
	Expense     lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Bar         lipgloss.Style
}

// DefaultStyles tema oscuro.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Padding(0, 1),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Faint:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")),
		Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("114")).Padding(0, 1),
		Dropdown:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Panel:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Open:        lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Closed:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Revenue:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Expense:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Bar:         lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
}

// ticketStatus colorea el estado del chamado.
func (s Styles) ticketStatus(status entity.TicketStatus) string {
	if status == entity.TicketClosed {
		return s.Closed.Render(string(status))
	}
	return s.Open.Render(string(status))
}
