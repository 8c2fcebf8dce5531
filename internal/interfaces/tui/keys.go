package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap atajos del painel.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	Tab5    key.Binding

	// Campo de cliente (autocompletado).
	FocusCustomer  key.Binding
	ClearSelection key.Binding
	Select         key.Binding

	// Chamados.
	NewTicket   key.Binding
	EditTicket  key.Binding
	CloseTicket key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Submit      key.Binding

	Reload key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

// DefaultKeyMap atajos por defecto.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "subir"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "bajar"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab", "right"),
		key.WithHelp("Tab", "pestaña siguiente"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "left"),
		key.WithHelp("S-Tab", "pestaña anterior"),
	),
	Tab1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "visão geral")),
	Tab2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "chamados")),
	Tab3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "clientes")),
	Tab4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "contatos")),
	Tab5: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "financeiro")),
	FocusCustomer: key.NewBinding(
		key.WithKeys("/", "c"),
		key.WithHelp("/", "buscar cliente"),
	),
	ClearSelection: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "limpiar selección"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "seleccionar"),
	),
	NewTicket: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "nuevo chamado"),
	),
	EditTicket: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "editar"),
	),
	CloseTicket: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "finalizar"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "campo siguiente"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "campo anterior"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s", "enter"),
		key.WithHelp("C-s", "guardar"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "recargar"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancelar"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "salir"),
	),
}
