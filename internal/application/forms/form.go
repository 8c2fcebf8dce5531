// Package forms implementa los controladores de formulario: un borrador editable en modo
// creación o edición, validación mínima antes de tocar la store y reinicio tras el éxito.
// Si la store falla, el borrador se conserva para reintentar.
package forms

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// Mode indica si el formulario crea o edita.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// State snapshot observable del formulario.
type State[D any] struct {
	Draft  D
	Mode   Mode
	EditID int64
	// Pinned es true cuando el usuario eligió un cliente en el propio formulario;
	// a partir de ahí el borrador deja de seguir la selección global.
	Pinned bool
}

// Writer es la parte de una store que usan los formularios.
type Writer[E any] interface {
	Add(ctx context.Context, item E) (E, error)
	Update(ctx context.Context, id int64, item E) (E, error)
	Find(id int64) (E, bool)
}

// definition describe un tipo de formulario concreto.
type definition[D, E any] struct {
	name     string
	empty    func() D
	validate func(D) error
	build    func(D) E
	merge    func(E, D) E
	load     func(E) D
	customer func(D) *int64
	withCust func(D, *int64) D
	onSaved  func(Mode)
}

// Form núcleo común de los controladores.
type Form[D, E any] struct {
	def    definition[D, E]
	writer Writer[E]
	sel    *store.Selection
	state  *reactive.Value[State[D]]
	submit sync.Mutex
	stop   func()
	log    *logger.Logger
}

func newForm[D, E any](def definition[D, E], w Writer[E], sel *store.Selection, log *logger.Logger) *Form[D, E] {
	if log == nil {
		log = logger.Nop()
	}
	f := &Form[D, E]{
		def:    def,
		writer: w,
		sel:    sel,
		state:  reactive.NewValue(State[D]{Draft: def.empty(), Mode: ModeCreate}),
		log:    log.Component("form." + def.name),
	}
	return f
}

// followSelection mantiene el cliente del borrador igual al seleccionado mientras el
// usuario no elija otro en el formulario ni esté editando.
func (f *Form[D, E]) followSelection() {
	if f.sel == nil || f.def.withCust == nil {
		return
	}
	f.stop = reactive.Effect(func() {
		id := selectedID(f.sel)
		f.state.Update(func(s State[D]) State[D] {
			if s.Pinned || s.Mode == ModeEdit {
				return s
			}
			s.Draft = f.def.withCust(s.Draft, id)
			return s
		})
	}, f.sel)
}

// State devuelve el estado actual.
func (f *Form[D, E]) State() State[D] { return f.state.Get() }

// CustomerID devuelve el cliente del borrador.
func (f *Form[D, E]) CustomerID() *int64 {
	if f.def.customer == nil {
		return nil
	}
	return f.def.customer(f.state.Get().Draft)
}

// Draft devuelve el borrador actual.
func (f *Form[D, E]) Draft() D { return f.state.Get().Draft }

// Watch implementa reactive.Source.
func (f *Form[D, E]) Watch(fn func()) func() { return f.state.Watch(fn) }

// Edit modifica el borrador.
func (f *Form[D, E]) Edit(fn func(D) D) {
	f.state.Update(func(s State[D]) State[D] {
		s.Draft = fn(s.Draft)
		return s
	})
}

// PickCustomer fija el cliente elegido en el formulario. nil vuelve a seguir la selección global.
func (f *Form[D, E]) PickCustomer(id *int64) {
	if f.def.withCust == nil {
		return
	}
	f.state.Update(func(s State[D]) State[D] {
		if id == nil {
			s.Pinned = false
			s.Draft = f.def.withCust(s.Draft, selectedID(f.sel))
			return s
		}
		v := *id
		s.Pinned = true
		s.Draft = f.def.withCust(s.Draft, &v)
		return s
	})
}

// StartEdit carga el registro id y pasa a modo edición.
func (f *Form[D, E]) StartEdit(id int64) bool {
	item, ok := f.writer.Find(id)
	if !ok {
		return false
	}
	f.state.Set(State[D]{Draft: f.def.load(item), Mode: ModeEdit, EditID: id})
	return true
}

// Reset vuelve a modo creación con un borrador vacío (con el cliente seleccionado, si hay).
func (f *Form[D, E]) Reset() {
	d := f.def.empty()
	if f.def.withCust != nil {
		d = f.def.withCust(d, selectedID(f.sel))
	}
	f.state.Set(State[D]{Draft: d, Mode: ModeCreate})
}

// Submit valida y envía el borrador a la store. Un error de validación no llama a la
// store; cualquier error deja el borrador intacto.
func (f *Form[D, E]) Submit(ctx context.Context) (E, error) {
	f.submit.Lock()
	defer f.submit.Unlock()

	var zero E
	s := f.state.Get()
	if err := f.def.validate(s.Draft); err != nil {
		f.log.Debug().Err(err).Msg("borrador rechazado")
		return zero, err
	}

	var (
		saved E
		err   error
	)
	if s.Mode == ModeEdit {
		cur, ok := f.writer.Find(s.EditID)
		if !ok {
			cur = f.def.build(s.Draft)
		}
		saved, err = f.writer.Update(ctx, s.EditID, f.def.merge(cur, s.Draft))
	} else {
		saved, err = f.writer.Add(ctx, f.def.build(s.Draft))
	}
	if err != nil {
		f.log.Warn().Err(err).Str("mode", string(s.Mode)).Msg("envío fallido; se conserva el borrador")
		return zero, err
	}
	f.Reset()
	if f.def.onSaved != nil {
		f.def.onSaved(s.Mode)
	}
	return saved, nil
}

// Close deja de seguir la selección.
func (f *Form[D, E]) Close() {
	if f.stop != nil {
		f.stop()
	}
}

func selectedID(sel *store.Selection) *int64 {
	if sel == nil {
		return nil
	}
	if id, ok := sel.ID(); ok {
		return &id
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
