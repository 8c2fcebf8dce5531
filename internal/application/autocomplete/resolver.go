// Package autocomplete resuelve el texto tecleado en el campo de cliente a un idcliente.
package autocomplete

import (
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/application/views"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/clock"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// Phase estado del campo.
type Phase string

const (
	Idle      Phase = "idle"
	Searching Phase = "searching"
	Resolved  Phase = "resolved"
)

// DefaultBlurDelay gracia antes de ocultar el dropdown al perder el foco.
const DefaultBlurDelay = 200 * time.Millisecond

// State snapshot observable del campo.
type State struct {
	Phase      Phase             `json:"fase"`
	Query      string            `json:"texto"`
	Candidates []entity.Customer `json:"candidatos"`
	Dropdown   bool              `json:"dropdown"`
	// SelectedID sobrevive mientras se sigue tecleando; se pierde al vaciar el texto o
	// cuando ningún cliente coincide.
	SelectedID *int64 `json:"idcliente,omitempty"`
}

// Customers lista de candidatos observable (CustomerStore la satisface).
type Customers interface {
	reactive.Source
	Items() []entity.Customer
}

// Options parámetros del resolver.
type Options struct {
	Clock     clock.Clock
	BlurDelay time.Duration
	// OnResolve recibe el id resuelto, o nil cuando la resolución se pierde.
	OnResolve func(id *int64)
	Logger    *logger.Logger
}

// Resolver máquina Idle/Searching/Resolved. Los observadores del estado no deben volver
// a llamar al Resolver de forma síncrona; OnResolve sí puede (se invoca fuera del lock).
type Resolver struct {
	customers Customers
	clock     clock.Clock
	delay     time.Duration
	onResolve func(*int64)
	log       *logger.Logger

	mu    sync.Mutex
	state *reactive.Value[State]
	blur  clock.Timer
	stop  func()
}

// New crea el resolver en estado Idle.
func New(customers Customers, opts Options) *Resolver {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.BlurDelay <= 0 {
		opts.BlurDelay = DefaultBlurDelay
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	r := &Resolver{
		customers: customers,
		clock:     opts.Clock,
		delay:     opts.BlurDelay,
		onResolve: opts.OnResolve,
		log:       opts.Logger.Component("autocomplete"),
		state:     reactive.NewValue(State{Phase: Idle}),
	}
	r.stop = customers.Watch(r.refresh)
	return r
}

// State devuelve el estado actual.
func (r *Resolver) State() State { return r.state.Get() }

// Watch implementa reactive.Source.
func (r *Resolver) Watch(fn func()) func() { return r.state.Watch(fn) }

// Type procesa un cambio del texto.
func (r *Resolver) Type(query string) {
	r.mu.Lock()
	st := r.state.Get()
	st.Query = query
	id, emit := r.evaluate(&st)
	r.state.Set(st)
	r.mu.Unlock()
	if emit {
		r.emit(id)
	}
}

// Focus reevalúa el texto actual y cancela un blur pendiente.
func (r *Resolver) Focus() {
	r.mu.Lock()
	r.cancelBlur()
	st := r.state.Get()
	id, emit := r.evaluate(&st)
	r.state.Set(st)
	r.mu.Unlock()
	if emit {
		r.emit(id)
	}
}

// Pick elige explícitamente un candidato. Devuelve false si el id no existe.
func (r *Resolver) Pick(id int64) bool {
	c, ok := findCustomer(r.customers.Items(), id)
	if !ok {
		return false
	}
	r.mu.Lock()
	st := r.state.Get()
	changed := st.SelectedID == nil || *st.SelectedID != id
	r.state.Set(resolvedState(c))
	r.mu.Unlock()
	if changed {
		r.emit(&id)
	}
	return true
}

// Clear vacía el campo y emite nil.
func (r *Resolver) Clear() {
	r.mu.Lock()
	r.cancelBlur()
	r.state.Set(State{Phase: Idle})
	r.mu.Unlock()
	r.emit(nil)
}

// Blur oculta el dropdown tras la gracia configurada sin tocar la resolución.
func (r *Resolver) Blur() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelBlur()
	r.blur = r.clock.AfterFunc(r.delay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.blur = nil
		st := r.state.Get()
		if !st.Dropdown {
			return
		}
		st.Dropdown = false
		r.state.Set(st)
	})
}

// Preset refleja en el campo una selección hecha fuera de él. No emite.
func (r *Resolver) Preset(c *entity.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.state.Get()
	if c == nil {
		if st.SelectedID != nil || st.Phase == Resolved {
			r.state.Set(State{Phase: Idle})
		}
		return
	}
	if st.Phase == Resolved && st.SelectedID != nil && *st.SelectedID == c.ID {
		return
	}
	r.state.Set(resolvedState(*c))
}

// Close deja de observar la lista de clientes.
func (r *Resolver) Close() {
	r.mu.Lock()
	r.cancelBlur()
	r.mu.Unlock()
	if r.stop != nil {
		r.stop()
	}
}

// refresh recalcula los candidatos mientras se busca. No resuelve ni emite.
func (r *Resolver) refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.state.Get()
	if st.Phase != Searching {
		return
	}
	st.Candidates = Filter(r.customers.Items(), st.Query)
	if len(st.Candidates) == 0 {
		st.Dropdown = false
	}
	r.state.Set(st)
}

// evaluate aplica el texto de st. Devuelve el id a emitir y si hay que emitir.
func (r *Resolver) evaluate(st *State) (*int64, bool) {
	term := strings.TrimSpace(st.Query)
	prev := st.SelectedID
	if term == "" {
		*st = State{Phase: Idle, Query: st.Query}
		return nil, prev != nil
	}

	st.Phase = Searching
	st.Candidates = Filter(r.customers.Items(), term)
	if len(st.Candidates) == 0 {
		st.Dropdown = false
		st.SelectedID = nil
		return nil, prev != nil
	}
	st.Dropdown = true

	c, ok := exactMatch(st.Candidates, term)
	if !ok {
		return nil, false
	}
	*st = resolvedState(c)
	r.log.Debug().Int64("idcliente", c.ID).Str("texto", term).Msg("coincidencia exacta")
	if prev != nil && *prev == c.ID {
		return nil, false
	}
	id := c.ID
	return &id, true
}

func (r *Resolver) emit(id *int64) {
	if r.onResolve != nil {
		r.onResolve(id)
	}
}

func (r *Resolver) cancelBlur() {
	if r.blur != nil {
		r.blur.Stop()
		r.blur = nil
	}
}

// Filter devuelve los clientes cuyo razao, fantasia o cpcn contienen term.
func Filter(list []entity.Customer, term string) []entity.Customer {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	var out []entity.Customer
	for _, c := range list {
		if views.Contains(c.LegalName, term) || views.Contains(c.TradeName, term) ||
			(c.TaxID != nil && strings.Contains(c.TaxIDString(), term)) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// exactMatch exige una única coincidencia exacta, con el mismo folding que Filter; con varias
// el campo sigue buscando.
func exactMatch(list []entity.Customer, term string) (entity.Customer, bool) {
	var (
		found entity.Customer
		n     int
	)
	for _, c := range list {
		if views.EqualFold(c.LegalName, term) || (c.TradeName != "" && views.EqualFold(c.TradeName, term)) ||
			(c.TaxID != nil && c.TaxIDString() == term) {
			found = c
			n++
		}
	}
	return found, n == 1
}

func findCustomer(list []entity.Customer, id int64) (entity.Customer, bool) {
	for _, c := range list {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return entity.Customer{}, false
}

func resolvedState(c entity.Customer) State {
	id := c.ID
	label := c.LegalName
	if label == "" {
		label = c.TradeName
	}
	return State{Phase: Resolved, Query: label, SelectedID: &id}
}
