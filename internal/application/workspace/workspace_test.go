package workspace_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/autocomplete"
	"github.com/jhoicas/bione-api/internal/application/forms"
	"github.com/jhoicas/bione-api/internal/application/workspace"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/clock"
)

func newLocal(t *testing.T) *workspace.Workspace {
	t.Helper()
	clk := clock.NewFake(time.Date(2025, 3, 14, 15, 0, 0, 0, time.Local))
	ws := workspace.New(workspace.Options{Clock: clk})
	t.Cleanup(ws.Close)
	require.NoError(t, ws.LoadAll(context.Background()))
	return ws
}

func TestWorkspace_ModoLocalCargaSemillas(t *testing.T) {
	ws := newLocal(t)

	assert.True(t, ws.Local())
	assert.Len(t, ws.Customers.Items(), 1)
	assert.Len(t, ws.Tickets.Items(), 1)
	assert.Empty(t, ws.Contacts.Items())
	assert.Empty(t, ws.Financials.Items())
	assert.Equal(t, 1, ws.Views.Overview.Summary.Get().TicketsOpen)
}

func TestWorkspace_AutocompletadoSeleccionaEnTodasLasPantallas(t *testing.T) {
	ws := newLocal(t)
	ctx := context.Background()

	acme, err := ws.Customers.Add(ctx, entity.Customer{
		LegalName: "Acme Corp", Active: true,
		Phones: []entity.CustomerPhone{{Phone: "1133334444", Active: true}},
	})
	require.NoError(t, err)
	_, err = ws.Tickets.Add(ctx, entity.Ticket{Title: "Impressora", Description: "Atolada", CustomerID: acme.ID})
	require.NoError(t, err)
	require.Len(t, ws.Views.Tickets.Rows.Get(), 2)

	ws.CustomerField.Type("acme corp")

	id, ok := ws.Selection.ID()
	require.True(t, ok)
	assert.Equal(t, acme.ID, id)
	assert.Len(t, ws.Views.Tickets.Rows.Get(), 1)
	assert.Len(t, ws.Views.Customers.Rows.Get(), 1)
	assert.Equal(t, 1, ws.Views.Overview.Summary.Get().TicketsTotal)
	assert.Equal(t, acme.ID, *ws.TicketForm.CustomerID(), "el formulario sigue la selección")
	assert.Equal(t, forms.ModeEdit, ws.CustomerForm.State().Mode)

	ws.CustomerField.Clear()
	assert.Nil(t, ws.Selection.Get())
	assert.Len(t, ws.Views.Tickets.Rows.Get(), 2)
}

func TestWorkspace_SeleccionExternaSeReflejaEnElCampo(t *testing.T) {
	ws := newLocal(t)
	id := int64(1)

	require.NoError(t, ws.SelectCustomer(&id))
	st := ws.CustomerField.State()
	assert.Equal(t, autocomplete.Resolved, st.Phase)
	assert.Equal(t, "Empresa X Ltda", st.Query)

	missing := int64(404)
	assert.ErrorIs(t, ws.SelectCustomer(&missing), domain.ErrNotFound)

	require.NoError(t, ws.Customers.Remove(context.Background(), 1))
	assert.Nil(t, ws.Selection.Get(), "quitar el cliente limpia la selección")
	assert.Equal(t, autocomplete.Idle, ws.CustomerField.State().Phase)
}
