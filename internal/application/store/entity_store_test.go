package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/clock"
)

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func ticket(id int64, title string, opened time.Time) entity.Ticket {
	return entity.Ticket{ID: id, Title: title, Description: "d", OpenedAt: opened, Status: entity.TicketOpen, CustomerID: 1, Category: "Rede"}
}

func ids(list []entity.Ticket) []int64 {
	out := make([]int64, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}

// ─── Load ────────────────────────────────────────────────────────────────────

func TestLoad_ModoLocalPublicaSemillaUnaVez(t *testing.T) {
	s := store.NewTicketStore(nil, clock.NewFake(base), nil, nil)
	require.True(t, s.Local())
	require.Empty(t, s.Items())

	require.NoError(t, s.Load(context.Background()))
	first := s.Items()
	require.Len(t, first, 1)
	assert.Equal(t, "Exemplo: PC não liga (Mock)", first[0].Title)

	_, err := s.Add(context.Background(), ticket(0, "novo", base))
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Items(), 2, "un segundo Load no vuelve a sembrar ni borra lo local")
}

func TestLoad_ModoLocalNoPisaMutacionesPrevias(t *testing.T) {
	s := store.NewTicketStore(nil, clock.NewFake(base), nil, nil)

	created, err := s.Add(context.Background(), ticket(0, "antes del load", base))
	require.NoError(t, err)
	assert.Equal(t, []int64{created.ID, 1}, ids(s.Items()), "la semilla se publica antes de la primera mutación")

	require.NoError(t, s.Load(context.Background()))
	got, ok := s.Find(created.ID)
	require.True(t, ok, "el registro creado antes del Load sobrevive")
	assert.Equal(t, "antes del load", got.Title)
	assert.Len(t, s.Items(), 2)
}

func TestRemove_ModoLocalAntesDelLoad(t *testing.T) {
	s := store.NewTicketStore(nil, clock.NewFake(base), nil, nil)

	require.NoError(t, s.Remove(context.Background(), 1))
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Items(), "el Load no resucita la semilla eliminada")
}

func TestLoad_BackendEsIdempotente(t *testing.T) {
	repo := newTicketTable(ticket(2, "b", base.Add(time.Hour)), ticket(1, "a", base))
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)

	require.NoError(t, s.Load(context.Background()))
	first := s.Items()
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, first, s.Items())
	assert.Equal(t, []int64{2, 1}, ids(s.Items()))
}

func TestLoad_FalloInicialUsaSemilla(t *testing.T) {
	repo := newTicketTable()
	repo.failList = errBackendDown
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.Len(t, s.Items(), 1, "la semilla sustituye a la lectura fallida")
}

func TestLoad_FalloPosteriorConservaEstado(t *testing.T) {
	repo := newTicketTable(ticket(5, "real", base))
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))

	repo.failList = errBackendDown
	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, []int64{5}, ids(s.Items()))
}

// ─── Add ─────────────────────────────────────────────────────────────────────

func TestAdd_ModoLocalAsignaIdsSecuenciales(t *testing.T) {
	s := store.NewTicketStore(nil, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))

	a, err := s.Add(context.Background(), entity.Ticket{Title: "a", Description: "x", CustomerID: 1})
	require.NoError(t, err)
	b, err := s.Add(context.Background(), entity.Ticket{Title: "b", Description: "y", CustomerID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(2), a.ID)
	assert.Equal(t, int64(3), b.ID)
	assert.Equal(t, entity.TicketOpen, a.Status)
	assert.Equal(t, base, a.OpenedAt)
	assert.Equal(t, []int64{3, 2, 1}, ids(s.Items()), "lo más reciente primero")
}

func TestAdd_BackendMuestraPlaceholderYRecarga(t *testing.T) {
	repo := newTicketTable(ticket(1, "a", base))
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))

	var during []entity.Ticket
	repo.onInsert = func(entity.Ticket) { during = s.Items() }

	created, err := s.Add(context.Background(), entity.Ticket{Title: "nuevo", Description: "x", CustomerID: 1})
	require.NoError(t, err)

	require.Len(t, during, 2)
	assert.Less(t, during[0].ID, int64(0), "placeholder con id provisional")
	assert.Equal(t, "nuevo", during[0].Title)

	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, []int64{101, 1}, ids(s.Items()))
	assert.Equal(t, 2, repo.count("list"), "carga inicial + recarga tras insertar")
}

func TestAdd_BackendFallaRetiraPlaceholder(t *testing.T) {
	repo := newTicketTable(ticket(1, "a", base))
	repo.failInsert = errBackendDown
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))

	created, err := s.Add(context.Background(), entity.Ticket{Title: "nuevo", Description: "x", CustomerID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.Equal(t, entity.Ticket{}, created)
	assert.Equal(t, []int64{1}, ids(s.Items()))
}

func TestAdd_IgnoraCancelacionDelLlamador(t *testing.T) {
	repo := newTicketTable()
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Add(ctx, entity.Ticket{Title: "x", Description: "y", CustomerID: 1})
	require.NoError(t, err)
	for _, e := range repo.ctxErrs[1:] {
		assert.NoError(t, e)
	}
}

// ─── Update / Remove ─────────────────────────────────────────────────────────

func TestUpdate_FallaRestauraAnterior(t *testing.T) {
	repo := newTicketTable(ticket(1, "original", base))
	repo.failUpdate = errBackendDown
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))

	var during string
	repo.onUpdate = func(entity.Ticket) { during = s.Items()[0].Title }

	changed := ticket(1, "cambiado", base)
	_, err := s.Update(context.Background(), 1, changed)
	require.Error(t, err)
	assert.Equal(t, "cambiado", during)
	assert.Equal(t, "original", s.Items()[0].Title)
}

func TestUpdate_IdInexistente(t *testing.T) {
	s := store.NewTicketStore(nil, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))
	_, err := s.Update(context.Background(), 99, ticket(99, "x", base))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove_FallaReinsertaEnSuPosicion(t *testing.T) {
	repo := newTicketTable(ticket(3, "c", base), ticket(2, "b", base), ticket(1, "a", base))
	repo.failDelete = errBackendDown
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))

	var during []int64
	repo.onDelete = func(int64) { during = ids(s.Items()) }

	err := s.Remove(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, []int64{3, 1}, during)
	assert.Equal(t, []int64{3, 2, 1}, ids(s.Items()))
}

func TestRemove_ConBackendRecarga(t *testing.T) {
	repo := newTicketTable(ticket(2, "b", base), ticket(1, "a", base))
	s := store.NewTicketStore(repo, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Remove(context.Background(), 2))
	assert.Equal(t, []int64{1}, ids(s.Items()))
	assert.ErrorIs(t, s.Remove(context.Background(), 2), domain.ErrNotFound)
}

func TestMutaciones_PublicanSliceNuevo(t *testing.T) {
	s := store.NewTicketStore(nil, clock.NewFake(base), nil, nil)
	require.NoError(t, s.Load(context.Background()))
	before := s.Items()

	notified := 0
	s.Watch(func() { notified++ })
	_, err := s.Update(context.Background(), 1, ticket(1, "cambiado", base))
	require.NoError(t, err)

	assert.Equal(t, "Exemplo: PC não liga (Mock)", before[0].Title, "el slice anterior no se modifica")
	assert.Equal(t, 1, notified)
}
