package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newTestModel(t *testing.T) (Model, *workspace.Workspace) {
	t.Helper()
	ws := workspace.New(workspace.Options{Clock: clock.NewFake(time.Date(2025, 3, 14, 15, 0, 0, 0, time.Local))})
	require.NoError(t, ws.LoadAll(t.Context()))
	m := NewModel(ws, nil)
	t.Cleanup(func() {
		m.Stop()
		ws.Close()
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return updated.(Model), ws
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// runResult ejecuta el comando asíncrono y entrega su mutationResultMsg al modelo.
func runResult(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(mutationResultMsg)
	require.True(t, ok, "se esperaba mutationResultMsg")
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// ──────────────────────────────────────────────────────────────────────────────
// Navegación
// ──────────────────────────────────────────────────────────────────────────────

func TestModel_CambioDePestanas(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, TabOverview, m.Tab())

	m, _ = press(t, m, runes("2"))
	assert.Equal(t, TabTickets, m.Tab())
	assert.Contains(t, m.View(), "Exemplo: PC não liga (Mock)")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabOverview, m.Tab())

	m, _ = press(t, m, runes("5"))
	assert.Equal(t, TabFinancials, m.Tab())

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// ──────────────────────────────────────────────────────────────────────────────
// Autocompletado de cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestModel_AutocompletadoFijaSeleccion(t *testing.T) {
	m, ws := newTestModel(t)

	m, _ = press(t, m, runes("/"))
	require.Equal(t, FocusCustomer, m.Focus())

	m = typeText(t, m, "empresa")
	assert.Nil(t, ws.Selection.Get(), "sin coincidencia exacta no hay selección")
	assert.Contains(t, m.View(), "Empresa X Ltda", "el dropdown muestra el candidato")

	m = typeText(t, m, " x")
	id, ok := ws.Selection.ID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusNav, m.Focus())

	m, _ = press(t, m, runes("x"))
	assert.Nil(t, ws.Selection.Get())
	assert.Empty(t, m.customer.Value())
}

func TestModel_EnterEligeCandidato(t *testing.T) {
	m, ws := newTestModel(t)

	m, _ = press(t, m, runes("c"))
	m = typeText(t, m, "empr")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, FocusNav, m.Focus())
	id, ok := ws.Selection.ID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "Empresa X Ltda", m.customer.Value())
}

func TestModel_SeleccionDesdePestanaClientes(t *testing.T) {
	m, ws := newTestModel(t)

	m, _ = press(t, m, runes("3"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	id, ok := ws.Selection.ID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	// La selección externa llega al campo por el puente de cambios.
	updated, _ := m.Update(changedMsg{})
	m = updated.(Model)
	assert.Equal(t, "Empresa X Ltda", m.customer.Value())
	assert.Contains(t, m.View(), "selecionado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Chamados
// ──────────────────────────────────────────────────────────────────────────────

func TestModel_NuevoChamadoSinClienteNoSeGuarda(t *testing.T) {
	m, ws := newTestModel(t)

	m, _ = press(t, m, runes("2"))
	m, _ = press(t, m, runes("n"))
	require.Equal(t, FocusTicketForm, m.Focus())

	m = typeText(t, m, "Impressora")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "Atolada")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = runResult(t, m, cmd)

	assert.Equal(t, FocusTicketForm, m.Focus(), "el formulario sigue abierto")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "idcliente")
	assert.Len(t, ws.Tickets.Items(), 1)
	assert.Equal(t, "Impressora", ws.TicketForm.Draft().Title, "el borrador se conserva")
}

func TestModel_NuevoChamadoConSeleccion(t *testing.T) {
	m, ws := newTestModel(t)
	id := int64(1)
	require.NoError(t, ws.SelectCustomer(&id))

	m, _ = press(t, m, runes("2"))
	m, _ = press(t, m, runes("n"))
	m = typeText(t, m, "Impressora")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "Atolada")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "Hardware")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = runResult(t, m, cmd)

	assert.Equal(t, FocusNav, m.Focus())
	assert.False(t, m.statusErr)
	require.Len(t, ws.Tickets.Items(), 2)
	assert.Contains(t, m.View(), "Impressora")
	assert.Empty(t, ws.TicketForm.Draft().Title)
}

func TestModel_FinalizarChamado(t *testing.T) {
	m, ws := newTestModel(t)

	m, _ = press(t, m, runes("2"))
	m, _ = press(t, m, runes("f"))
	require.Equal(t, FocusClosePrompt, m.Focus())

	// Sin solución no se cierra.
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = runResult(t, m, cmd)
	assert.Equal(t, FocusClosePrompt, m.Focus())
	assert.Equal(t, entity.TicketOpen, ws.Tickets.Items()[0].Status)

	m = typeText(t, m, "Fonte trocada")
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = runResult(t, m, cmd)

	assert.Equal(t, FocusNav, m.Focus())
	closed := ws.Tickets.Items()[0]
	assert.Equal(t, entity.TicketClosed, closed.Status)
	assert.Equal(t, "Fonte trocada", closed.Solution)
}

func TestModel_EscCancelaFormulario(t *testing.T) {
	m, ws := newTestModel(t)

	m, _ = press(t, m, runes("2"))
	m, _ = press(t, m, runes("e"))
	require.Equal(t, FocusTicketForm, m.Focus())
	assert.Equal(t, "Exemplo: PC não liga (Mock)", m.fields[fieldTitle].Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusNav, m.Focus())
	assert.Empty(t, ws.TicketForm.Draft().Title)
}

// ──────────────────────────────────────────────────────────────────────────────
// Financeiro y puente de cambios
// ──────────────────────────────────────────────────────────────────────────────

func TestModel_FinanceiroFormatoMoneda(t *testing.T) {
	m, ws := newTestModel(t)
	_, err := ws.Financials.Add(t.Context(), entity.Financial{
		CustomerID:  1,
		Description: "Mensalidade",
		Amount:      decimal.RequireFromString("1500.50"),
		Kind:        entity.FinancialRevenue,
		Status:      entity.FinancialPaid,
		Active:      true,
	})
	require.NoError(t, err)

	m, _ = press(t, m, runes("5"))
	view := m.View()
	assert.Contains(t, view, "Mensalidade")
	assert.Contains(t, view, "R$ 1.500,50")
}

func TestChanges_AgrupaNotificaciones(t *testing.T) {
	_, ws := newTestModel(t)
	c := WatchWorkspace(ws)

	id := int64(1)
	require.NoError(t, ws.SelectCustomer(&id))
	ws.Selection.Clear()

	assert.IsType(t, changedMsg{}, c.listen()())

	c.Stop()
	assert.Nil(t, c.listen()(), "tras Stop el comando no bloquea")
}
