package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

func TestCustomerStore_LocalTelefonosConIdsUnicos(t *testing.T) {
	s := store.NewCustomerStore(nil, nil, nil)
	require.NoError(t, s.Load(context.Background()))

	c, err := s.Add(context.Background(), entity.Customer{
		LegalName: "Acme Corp",
		Active:    true,
		Phones: []entity.CustomerPhone{
			{Phone: "+5511911111111", Active: true},
			{Email: "fin@acme.com", Active: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.ID)

	seen := map[int64]bool{}
	for _, cust := range s.Items() {
		for _, p := range cust.Phones {
			assert.False(t, seen[p.ID], "id de teléfono repetido %d", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 3)
}

func TestCustomerStore_UpdateLocalReemplazaTelefonos(t *testing.T) {
	s := store.NewCustomerStore(nil, nil, nil)
	require.NoError(t, s.Load(context.Background()))

	cur, ok := s.Find(1)
	require.True(t, ok)
	cur.Phones = append(cur.Phones, entity.CustomerPhone{Phone: "+5511900000000", Active: true})
	updated, err := s.Update(context.Background(), 1, cur)
	require.NoError(t, err)

	require.Len(t, updated.Phones, 2)
	assert.Equal(t, int64(1), updated.Phones[0].ID)
	assert.Equal(t, int64(2), updated.Phones[1].ID)
}

func TestCustomerStore_FindDevuelveCopia(t *testing.T) {
	s := store.NewCustomerStore(nil, nil, nil)
	require.NoError(t, s.Load(context.Background()))

	c, _ := s.Find(1)
	c.Phones[0].Phone = "mutado"
	again, _ := s.Find(1)
	assert.Equal(t, "+5511999999999", again.Phones[0].Phone)
}
