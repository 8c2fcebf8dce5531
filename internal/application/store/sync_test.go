package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

func TestSyncSelection_ReemplazaCopiaTrasActualizar(t *testing.T) {
	customers := store.NewCustomerStore(nil, nil, nil)
	require.NoError(t, customers.Load(context.Background()))
	sel := store.NewSelection()
	stop := store.SyncSelection(sel, customers)
	defer stop()

	c, _ := customers.Find(1)
	sel.Set(&c)

	c.TradeName = "Empresa X Renomeada"
	_, err := customers.Update(context.Background(), 1, c)
	require.NoError(t, err)

	require.NotNil(t, sel.Get())
	assert.Equal(t, "Empresa X Renomeada", sel.Get().TradeName)
}

func TestSyncSelection_LimpiaAlEliminar(t *testing.T) {
	customers := store.NewCustomerStore(nil, nil, nil)
	require.NoError(t, customers.Load(context.Background()))
	sel := store.NewSelection()
	defer store.SyncSelection(sel, customers)()

	c, _ := customers.Find(1)
	sel.Set(&c)
	require.NoError(t, customers.Remove(context.Background(), 1))
	assert.Nil(t, sel.Get())
}

func TestSyncSelection_ConservaClienteDesconocido(t *testing.T) {
	customers := store.NewCustomerStore(nil, nil, nil)
	sel := store.NewSelection()
	defer store.SyncSelection(sel, customers)()

	sel.Set(&entity.Customer{ID: 42, LegalName: "Externo"})
	require.NoError(t, customers.Load(context.Background()))
	require.NotNil(t, sel.Get())
	assert.Equal(t, int64(42), sel.Get().ID)
}

func TestSelection_NoCompartirMemoria(t *testing.T) {
	sel := store.NewSelection()
	c := entity.Customer{ID: 1, LegalName: "A", Phones: []entity.CustomerPhone{{ID: 1, Phone: "1"}}}
	sel.Set(&c)
	c.Phones[0].Phone = "mutado"
	assert.Equal(t, "1", sel.Get().Phones[0].Phone)

	id, ok := sel.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)
	sel.Clear()
	_, ok = sel.ID()
	assert.False(t, ok)
}
