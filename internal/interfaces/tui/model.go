// Package tui implementa el painel de terminal: las cinco pantallas del panel sobre el
// mismo workspace que usa la API, con el autocompletado de cliente alimentando la
// selección global y el formulario de chamados.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/bione-api/internal/application/forms"
	"github.com/jhoicas/bione-api/internal/application/views"
	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// Tab pestaña activa.
type Tab int

const (
	TabOverview Tab = iota
	TabTickets
	TabCustomers
	TabContacts
	TabFinancials
	tabCount
)

var tabTitles = [tabCount]string{"Visão geral", "Chamados", "Clientes", "Contatos", "Financeiro"}

// Focus región que recibe el teclado.
type Focus int

const (
	// FocusNav las teclas navegan pestañas y listas.
	FocusNav Focus = iota
	// FocusCustomer las teclas van al campo de cliente.
	FocusCustomer
	// FocusTicketForm las teclas van al formulario de chamados.
	FocusTicketForm
	// FocusClosePrompt las teclas van a la solución del chamado a finalizar.
	FocusClosePrompt
)

// Campos del formulario de chamados.
const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	ticketFieldCount
)

const (
	statusFadeDelay = 4 * time.Second
	clockTick       = time.Minute
)

// resultKind identifica la operación asíncrona que terminó.
type resultKind int

const (
	resultTicketSaved resultKind = iota
	resultTicketClosed
	resultReload
)

// mutationResultMsg llega cuando termina una escritura o la recarga.
type mutationResultMsg struct {
	kind resultKind
	err  error
}

// statusFadeMsg limpia el aviso de la barra de estado si sigue siendo el mismo.
type statusFadeMsg struct{ seq int }

// clockTickMsg recalcula las derivaciones que dependen del día.
type clockTickMsg struct{}

// Model modelo bubbletea del painel.
type Model struct {
	ws      *workspace.Workspace
	changes *Changes
	keys    KeyMap
	styles  Styles
	log     *logger.Logger

	width  int
	height int

	tab    Tab
	focus  Focus
	cursor [tabCount]int

	customer   textinput.Model
	suggestion int

	fields [ticketFieldCount]textinput.Model
	field  int

	solution  textinput.Model
	closingID int64

	status    string
	statusErr bool
	statusSeq int
}

// NewModel construye el painel sobre ws. Llamar a Stop al terminar el programa.
func NewModel(ws *workspace.Workspace, log *logger.Logger) Model {
	if log == nil {
		log = logger.Nop()
	}
	m := Model{
		ws:      ws,
		changes: WatchWorkspace(ws),
		keys:    DefaultKeyMap,
		styles:  DefaultStyles(),
		log:     log.Component("painel"),
	}

	m.customer = textinput.New()
	m.customer.Prompt = ""
	m.customer.Placeholder = "razão social, fantasia ou CNPJ"
	m.customer.CharLimit = 80

	placeholders := [ticketFieldCount]string{"Título", "Descrição", "Tipo (opcional)"}
	for i := range m.fields {
		m.fields[i] = textinput.New()
		m.fields[i].Prompt = ""
		m.fields[i].Placeholder = placeholders[i]
		m.fields[i].CharLimit = 200
	}

	m.solution = textinput.New()
	m.solution.Prompt = ""
	m.solution.Placeholder = "Solução"
	m.solution.CharLimit = 500

	m.syncCustomerInput()
	return m
}

// Stop corta el puente con el workspace.
func (m Model) Stop() { m.changes.Stop() }

// Tab devuelve la pestaña activa.
func (m Model) Tab() Tab { return m.tab }

// Focus devuelve la región con foco.
func (m Model) Focus() Focus { return m.focus }

// Init implementa tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.changes.listen(), scheduleClockTick())
}

func scheduleClockTick() tea.Cmd {
	return tea.Tick(clockTick, func(time.Time) tea.Msg { return clockTickMsg{} })
}

// Update implementa tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case changedMsg:
		m.syncCustomerInput()
		m.clampCursor()
		return m, m.changes.listen()

	case clockTickMsg:
		m.ws.Views.Tick()
		return m, scheduleClockTick()

	case mutationResultMsg:
		return m.handleResult(msg)

	case statusFadeMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case FocusCustomer:
			return m.handleCustomerKeys(msg)
		case FocusTicketForm:
			return m.handleTicketFormKeys(msg)
		case FocusClosePrompt:
			return m.handleClosePromptKeys(msg)
		}
		return m.handleNavKeys(msg)
	}
	return m, nil
}

func (m Model) handleNavKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab1):
		m.tab = TabOverview
	case key.Matches(msg, m.keys.Tab2):
		m.tab = TabTickets
	case key.Matches(msg, m.keys.Tab3):
		m.tab = TabCustomers
	case key.Matches(msg, m.keys.Tab4):
		m.tab = TabContacts
	case key.Matches(msg, m.keys.Tab5):
		m.tab = TabFinancials
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.tab] > 0 {
			m.cursor[m.tab]--
		}
	case key.Matches(msg, m.keys.Down):
		m.cursor[m.tab]++
		m.clampCursor()
	case key.Matches(msg, m.keys.FocusCustomer):
		m.focus = FocusCustomer
		m.suggestion = 0
		m.ws.CustomerField.Focus()
		return m, m.customer.Focus()
	case key.Matches(msg, m.keys.ClearSelection):
		m.ws.CustomerField.Clear()
		m.syncCustomerInput()
	case key.Matches(msg, m.keys.Reload):
		return m.withStatus("recargando…", false, m.reload())
	case key.Matches(msg, m.keys.Select) && m.tab == TabCustomers:
		rows := m.ws.Views.Customers.Rows.Get()
		if i := m.cursor[TabCustomers]; i < len(rows) {
			id := rows[i].ID
			if err := m.ws.SelectCustomer(&id); err != nil {
				return m.withStatus(err.Error(), true, nil)
			}
		}
	case key.Matches(msg, m.keys.NewTicket) && m.tab == TabTickets:
		m.ws.TicketForm.Reset()
		return m, m.openTicketForm()
	case key.Matches(msg, m.keys.EditTicket) && m.tab == TabTickets:
		row, ok := m.currentTicket()
		if !ok || row.IsClosed() {
			return m, nil
		}
		if !m.ws.TicketForm.StartEdit(row.ID) {
			return m.withStatus("chamado no encontrado", true, nil)
		}
		return m, m.openTicketForm()
	case key.Matches(msg, m.keys.CloseTicket) && m.tab == TabTickets:
		row, ok := m.currentTicket()
		if !ok || row.IsClosed() {
			return m, nil
		}
		m.closingID = row.ID
		m.solution.SetValue("")
		m.focus = FocusClosePrompt
		return m, m.solution.Focus()
	}
	return m, nil
}

// handleCustomerKeys: las flechas recorren los candidatos; Enter elige, Esc o Tab
// dejan el campo (el dropdown se oculta tras la gracia del resolver).
func (m Model) handleCustomerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := m.ws.CustomerField
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab:
		m.leaveCustomerField()
		return m, nil
	case tea.KeyUp:
		if m.suggestion > 0 {
			m.suggestion--
		}
		return m, nil
	case tea.KeyDown:
		if m.suggestion < len(field.State().Candidates)-1 {
			m.suggestion++
		}
		return m, nil
	case tea.KeyEnter:
		st := field.State()
		if st.Dropdown && m.suggestion < len(st.Candidates) {
			field.Pick(st.Candidates[m.suggestion].ID)
		}
		m.leaveCustomerField()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	before := m.customer.Value()
	var cmd tea.Cmd
	m.customer, cmd = m.customer.Update(msg)
	if after := m.customer.Value(); after != before {
		m.suggestion = 0
		field.Type(after)
	}
	return m, cmd
}

func (m *Model) leaveCustomerField() {
	m.ws.CustomerField.Blur()
	m.customer.Blur()
	m.focus = FocusNav
	m.syncCustomerInput()
}

func (m Model) handleTicketFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ws.TicketForm.Reset()
		m.closeTicketForm()
		return m, nil
	case msg.Type == tea.KeyCtrlS, msg.Type == tea.KeyEnter && m.field == ticketFieldCount-1:
		return m, m.submitTicket()
	case key.Matches(msg, m.keys.NextField), msg.Type == tea.KeyEnter:
		return m, m.focusField((m.field + 1) % ticketFieldCount)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.focusField((m.field + ticketFieldCount - 1) % ticketFieldCount)
	}

	var cmd tea.Cmd
	m.fields[m.field], cmd = m.fields[m.field].Update(msg)
	title, description, category := m.fields[fieldTitle].Value(), m.fields[fieldDescription].Value(), m.fields[fieldCategory].Value()
	m.ws.TicketForm.Edit(func(d forms.TicketDraft) forms.TicketDraft {
		d.Title = title
		d.Description = description
		d.Category = category
		return d
	})
	return m, cmd
}

func (m Model) handleClosePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.solution.Blur()
		m.focus = FocusNav
		return m, nil
	case tea.KeyEnter:
		return m, m.finalizeTicket(m.closingID, m.solution.Value())
	}
	var cmd tea.Cmd
	m.solution, cmd = m.solution.Update(msg)
	return m, cmd
}

func (m Model) handleResult(msg mutationResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Int("operacion", int(msg.kind)).Msg("operación fallida")
		return m.withStatus(describeError(msg.err), true, nil)
	}
	switch msg.kind {
	case resultTicketSaved:
		m.closeTicketForm()
		return m.withStatus("chamado guardado", false, nil)
	case resultTicketClosed:
		m.solution.Blur()
		m.focus = FocusNav
		return m.withStatus("chamado finalizado", false, nil)
	}
	return m.withStatus("datos recargados", false, nil)
}

// withStatus muestra un aviso que se borra solo.
func (m Model) withStatus(text string, isErr bool, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	fade := tea.Tick(statusFadeDelay, func(time.Time) tea.Msg { return statusFadeMsg{seq: seq} })
	return m, tea.Batch(cmd, fade)
}

func describeError(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("%s: %s", verr.Field, verr.Message)
	}
	return err.Error()
}

// openTicketForm copia el borrador a los campos y pasa el foco al título.
func (m *Model) openTicketForm() tea.Cmd {
	d := m.ws.TicketForm.Draft()
	m.fields[fieldTitle].SetValue(d.Title)
	m.fields[fieldDescription].SetValue(d.Description)
	m.fields[fieldCategory].SetValue(d.Category)
	m.focus = FocusTicketForm
	return m.focusField(fieldTitle)
}

func (m *Model) closeTicketForm() {
	for i := range m.fields {
		m.fields[i].Blur()
		m.fields[i].SetValue("")
	}
	m.field = fieldTitle
	m.focus = FocusNav
}

func (m *Model) focusField(i int) tea.Cmd {
	m.fields[m.field].Blur()
	m.field = i
	return m.fields[i].Focus()
}

func (m Model) submitTicket() tea.Cmd {
	form := m.ws.TicketForm
	return func() tea.Msg {
		_, err := form.Submit(context.Background())
		return mutationResultMsg{kind: resultTicketSaved, err: err}
	}
}

func (m Model) finalizeTicket(id int64, solution string) tea.Cmd {
	form := m.ws.TicketForm
	return func() tea.Msg {
		_, err := form.Finalize(context.Background(), id, solution)
		return mutationResultMsg{kind: resultTicketClosed, err: err}
	}
}

func (m Model) reload() tea.Cmd {
	ws := m.ws
	return func() tea.Msg {
		return mutationResultMsg{kind: resultReload, err: ws.LoadAll(context.Background())}
	}
}

// syncCustomerInput refleja en el campo el texto del resolver cuando no se está
// escribiendo en él (selección externa o limpieza).
func (m *Model) syncCustomerInput() {
	if m.focus == FocusCustomer {
		return
	}
	if q := m.ws.CustomerField.State().Query; q != m.customer.Value() {
		m.customer.SetValue(q)
	}
}

// ticketRows abiertos primero, después los cerrados; es el orden en pantalla.
func (m Model) ticketRows() []views.TicketRow {
	open := m.ws.Views.Tickets.Open.Get()
	closed := m.ws.Views.Tickets.Closed.Get()
	rows := make([]views.TicketRow, 0, len(open)+len(closed))
	rows = append(rows, open...)
	return append(rows, closed...)
}

func (m Model) currentTicket() (views.TicketRow, bool) {
	rows := m.ticketRows()
	i := m.cursor[TabTickets]
	if i >= len(rows) {
		return views.TicketRow{}, false
	}
	return rows[i], true
}

func (m Model) rowCount(tab Tab) int {
	v := m.ws.Views
	switch tab {
	case TabTickets:
		return len(v.Tickets.Rows.Get())
	case TabCustomers:
		return len(v.Customers.Rows.Get())
	case TabContacts:
		return len(v.Contacts.Rows.Get())
	case TabFinancials:
		return len(v.Financials.Rows.Get())
	}
	return 0
}

func (m *Model) clampCursor() {
	for tab := Tab(0); tab < tabCount; tab++ {
		n := m.rowCount(tab)
		if m.cursor[tab] >= n {
			m.cursor[tab] = max(n-1, 0)
		}
	}
}
