package autocomplete_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/autocomplete"
	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/clock"
)

// customerList lista observable mínima para los tests.
type customerList struct {
	v *reactive.Value[[]entity.Customer]
}

func (l customerList) Items() []entity.Customer { return l.v.Get() }
func (l customerList) Watch(fn func()) func() { return l.v.Watch(fn) }
func (l customerList) set(list []entity.Customer) { l.v.Set(list) }

func taxID(n int64) *int64 { return &n }

func fixture() customerList {
	return customerList{v: reactive.NewValue([]entity.Customer{
		{ID: 1, LegalName: "Acme Corp", TradeName: "Acme Matriz", TaxID: taxID(11222333000144)},
		{ID: 2, LegalName: "Acme Corporation", TradeName: "ACME Brasil"},
		{ID: 3, LegalName: "Beta Serviços"},
	})}
}

type recorder struct{ got []*int64 }

func (r *recorder) fn(id *int64) { r.got = append(r.got, id) }

func (r *recorder) last(t *testing.T) *int64 {
	t.Helper()
	require.NotEmpty(t, r.got)
	return r.got[len(r.got)-1]
}

func newResolver(list customerList, clk clock.Clock) (*autocomplete.Resolver, *recorder) {
	rec := &recorder{}
	r := autocomplete.New(list, autocomplete.Options{Clock: clk, BlurDelay: 200 * time.Millisecond, OnResolve: rec.fn})
	return r, rec
}

// ─── resolución ──────────────────────────────────────────────────────────────

func TestResolver_CoincidenciaExactaResuelve(t *testing.T) {
	r, rec := newResolver(fixture(), clock.NewFake(time.Now()))
	defer r.Close()

	r.Type("acme corp")
	st := r.State()

	assert.Equal(t, autocomplete.Resolved, st.Phase)
	require.NotNil(t, st.SelectedID)
	assert.Equal(t, int64(1), *st.SelectedID)
	assert.False(t, st.Dropdown)
	assert.Equal(t, "Acme Corp", st.Query, "el texto pasa a la razão social")
	assert.Equal(t, int64(1), *rec.last(t))
}

func TestResolver_CoincidenciaConFoldingUnicode(t *testing.T) {
	list := customerList{v: reactive.NewValue([]entity.Customer{
		{ID: 7, LegalName: "Straße Móveis"},
		{ID: 8, LegalName: "Beta Serviços"},
	})}
	r, rec := newResolver(list, clock.NewFake(time.Now()))
	defer r.Close()

	r.Type("STRASSE MÓVEIS")
	st := r.State()
	assert.Equal(t, autocomplete.Resolved, st.Phase, "lo que aparece como candidato también resuelve")
	require.NotNil(t, st.SelectedID)
	assert.Equal(t, int64(7), *st.SelectedID)
	assert.Equal(t, int64(7), *rec.last(t))
}

func TestResolver_PrefijoSigueBuscando(t *testing.T) {
	r, rec := newResolver(fixture(), clock.NewFake(time.Now()))
	defer r.Close()

	r.Type("Acme")
	st := r.State()

	assert.Equal(t, autocomplete.Searching, st.Phase)
	assert.True(t, st.Dropdown)
	require.Len(t, st.Candidates, 2)
	assert.Equal(t, int64(1), st.Candidates[0].ID)
	assert.Equal(t, int64(2), st.Candidates[1].ID)
	assert.Nil(t, st.SelectedID)
	assert.Empty(t, rec.got)
}

func TestResolver_BuscaPorCPCN(t *testing.T) {
	r, rec := newResolver(fixture(), clock.NewFake(time.Now()))
	defer r.Close()

	r.Type("11222")
	assert.Len(t, r.State().Candidates, 1)
	assert.Equal(t, autocomplete.Searching, r.State().Phase)

	r.Type("11222333000144")
	assert.Equal(t, autocomplete.Resolved, r.State().Phase)
	assert.Equal(t, int64(1), *rec.last(t))
}

func TestResolver_SinCoincidenciasPierdeLaResolucion(t *testing.T) {
	r, rec := newResolver(fixture(), clock.NewFake(time.Now()))
	defer r.Close()

	r.Type("Beta Serviços")
	require.Equal(t, autocomplete.Resolved, r.State().Phase)

	r.Type("Beta Serviços X")
	st := r.State()
	assert.Equal(t, autocomplete.Searching, st.Phase)
	assert.False(t, st.Dropdown)
	assert.Nil(t, st.SelectedID)
	require.Len(t, rec.got, 2)
	assert.Nil(t, rec.got[1])
}

func TestResolver_TecleoConservaIDHastaVaciar(t *testing.T) {
	r, rec := newResolver(fixture(), clock.NewFake(time.Now()))
	defer r.Close()

	require.True(t, r.Pick(2))
	r.Type("Acme Corpora")
	st := r.State()
	assert.Equal(t, autocomplete.Searching, st.Phase)
	require.NotNil(t, st.SelectedID)
	assert.Equal(t, int64(2), *st.SelectedID)

	r.Type("  ")
	assert.Equal(t, autocomplete.Idle, r.State().Phase)
	assert.Nil(t, rec.last(t))
}

func TestResolver_PickYClear(t *testing.T) {
	r, rec := newResolver(fixture(), clock.NewFake(time.Now()))
	defer r.Close()

	assert.False(t, r.Pick(99))
	require.True(t, r.Pick(3))
	assert.Equal(t, autocomplete.Resolved, r.State().Phase)
	assert.Equal(t, "Beta Serviços", r.State().Query)

	r.Clear()
	assert.Equal(t, autocomplete.Idle, r.State().Phase)
	assert.Equal(t, "", r.State().Query)
	assert.Nil(t, rec.last(t))
	assert.Len(t, rec.got, 2)
}

// ─── blur ────────────────────────────────────────────────────────────────────

func TestResolver_BlurOcultaTrasLaGracia(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))
	r, _ := newResolver(fixture(), clk)
	defer r.Close()

	r.Type("Acme")
	r.Blur()
	clk.Advance(150 * time.Millisecond)
	assert.True(t, r.State().Dropdown, "dentro de la gracia el dropdown sigue visible")

	clk.Advance(50 * time.Millisecond)
	st := r.State()
	assert.False(t, st.Dropdown)
	assert.Equal(t, autocomplete.Searching, st.Phase, "blur no cambia la fase")
}

func TestResolver_FocusCancelaBlur(t *testing.T) {
	clk := clock.NewFake(time.Now())
	r, _ := newResolver(fixture(), clk)
	defer r.Close()

	r.Type("Acme")
	r.Blur()
	require.Equal(t, 1, clk.Pending())
	r.Focus()
	assert.Equal(t, 0, clk.Pending())
	clk.Advance(time.Second)
	assert.True(t, r.State().Dropdown)
}

// ─── integración con la lista y la selección ─────────────────────────────────

func TestResolver_CandidatosSiguenLaLista(t *testing.T) {
	list := fixture()
	r, _ := newResolver(list, clock.NewFake(time.Now()))
	defer r.Close()

	r.Type("beta")
	require.Len(t, r.State().Candidates, 1)

	list.set(append(list.Items(), entity.Customer{ID: 4, LegalName: "Beta Two"}))
	assert.Len(t, r.State().Candidates, 2)
}

func TestResolver_PresetNoEmite(t *testing.T) {
	r, rec := newResolver(fixture(), clock.NewFake(time.Now()))
	defer r.Close()

	r.Preset(&entity.Customer{ID: 3, LegalName: "Beta Serviços"})
	assert.Equal(t, autocomplete.Resolved, r.State().Phase)
	r.Preset(nil)
	assert.Equal(t, autocomplete.Idle, r.State().Phase)
	assert.Empty(t, rec.got)
}

func TestResolver_AlimentaLaSeleccion(t *testing.T) {
	customers := store.NewCustomerStore(nil, nil, nil)
	require.NoError(t, customers.Load(context.Background()))
	sel := store.NewSelection()

	r := autocomplete.New(customers, autocomplete.Options{
		Clock: clock.NewFake(time.Now()),
		OnResolve: func(id *int64) {
			if id == nil {
				sel.Clear()
				return
			}
			if c, ok := customers.Find(*id); ok {
				sel.Set(&c)
			}
		},
	})
	defer r.Close()

	r.Type("empresa x")
	id, ok := sel.ID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	r.Clear()
	assert.Nil(t, sel.Get())
}
