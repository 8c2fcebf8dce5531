// Package workspace arma el estado compartido del panel: stores, selección global,
// vistas de las pantallas, formularios y el autocompletado de cliente. La API HTTP y el
// painel de terminal usan la misma construcción.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/bione-api/internal/application/autocomplete"
	"github.com/jhoicas/bione-api/internal/application/forms"
	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/application/views"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/repository"
	"github.com/jhoicas/bione-api/pkg/clock"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// Repositories adaptadores del backend. nil en Options significa modo local.
type Repositories struct {
	Tickets    repository.TicketRepository
	Customers  repository.CustomerRepository
	Contacts   repository.ContactRepository
	Financials repository.FinancialRepository
}

// Options dependencias del workspace.
type Options struct {
	Repos     *Repositories
	Clock     clock.Clock
	Logger    *logger.Logger
	Observer  store.Observer
	BlurDelay time.Duration
}

// Workspace estado de una sesión del panel.
type Workspace struct {
	Selection  *store.Selection
	Tickets    *store.TicketStore
	Customers  *store.CustomerStore
	Contacts   *store.ContactStore
	Financials *store.FinancialStore

	Views *views.Views

	TicketForm    *forms.TicketForm
	CustomerForm  *forms.CustomerForm
	ContactForm   *forms.ContactForm
	FinancialForm *forms.FinancialForm

	// CustomerField autocompletado que alimenta la selección global.
	CustomerField *autocomplete.Resolver

	Clock clock.Clock

	log      *logger.Logger
	local    bool
	stops    []func()
	closeOne sync.Once
}

// New construye el workspace. Con Repos nil todas las stores trabajan en memoria.
func New(opts Options) *Workspace {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	log := opts.Logger.Component("workspace")

	repos := opts.Repos
	if repos == nil {
		repos = &Repositories{}
	}

	w := &Workspace{
		Selection:  store.NewSelection(),
		Tickets:    store.NewTicketStore(repos.Tickets, opts.Clock, opts.Logger, opts.Observer),
		Customers:  store.NewCustomerStore(repos.Customers, opts.Logger, opts.Observer),
		Contacts:   store.NewContactStore(repos.Contacts, opts.Clock, opts.Logger, opts.Observer),
		Financials: store.NewFinancialStore(repos.Financials, opts.Clock, opts.Logger, opts.Observer),
		Clock:      opts.Clock,
		log:        log,
		local:      opts.Repos == nil,
	}
	w.stops = append(w.stops, store.SyncSelection(w.Selection, w.Customers))

	w.Views = views.New(views.Sources{
		Selection:  w.Selection,
		Tickets:    w.Tickets,
		Customers:  w.Customers,
		Contacts:   w.Contacts,
		Financials: w.Financials,
		Clock:      opts.Clock,
	})

	w.TicketForm = forms.NewTicketForm(w.Tickets, w.Selection, opts.Logger)
	w.CustomerForm = forms.NewCustomerForm(w.Customers, w.Selection, opts.Logger)
	w.ContactForm = forms.NewContactForm(w.Contacts, w.Selection, opts.Logger)
	w.FinancialForm = forms.NewFinancialForm(w.Financials, w.Selection, opts.Logger)

	w.CustomerField = autocomplete.New(w.Customers, autocomplete.Options{
		Clock:     opts.Clock,
		BlurDelay: opts.BlurDelay,
		OnResolve: func(id *int64) {
			if err := w.SelectCustomer(id); err != nil {
				log.Warn().Err(err).Msg("cliente resuelto no encontrado")
			}
		},
		Logger: opts.Logger,
	})
	w.stops = append(w.stops, w.Selection.Subscribe(w.CustomerField.Preset))

	return w
}

// Local indica si el workspace corre sin backend.
func (w *Workspace) Local() bool { return w.local }

// LoadAll carga las cuatro colecciones en paralelo. Cada store aplica su propio fallback;
// el error agrupa los fallos de backend que hubo.
func (w *Workspace) LoadAll(ctx context.Context) error {
	loaders := []interface {
		Name() string
		Load(context.Context) error
	}{w.Customers, w.Tickets, w.Contacts, w.Financials}

	errs := make([]error, len(loaders))
	var g errgroup.Group
	for i, l := range loaders {
		g.Go(func() error {
			if err := l.Load(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", l.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(errs...)
	if err != nil {
		w.log.Warn().Err(err).Msg("carga con fallos; se usan los datos disponibles")
	} else {
		w.log.Info().
			Int("clientes", len(w.Customers.Items())).
			Int("chamados", len(w.Tickets.Items())).
			Int("contatos", len(w.Contacts.Items())).
			Int("financeiro", len(w.Financials.Items())).
			Bool("local", w.local).
			Msg("workspace cargado")
	}
	return err
}

// SelectCustomer fija la selección global por id; nil la limpia.
func (w *Workspace) SelectCustomer(id *int64) error {
	if id == nil {
		w.Selection.Clear()
		return nil
	}
	c, ok := w.Customers.Find(*id)
	if !ok {
		return fmt.Errorf("cliente %d: %w", *id, domain.ErrNotFound)
	}
	w.Selection.Set(&c)
	return nil
}

// Close desconecta vistas, formularios y suscripciones.
func (w *Workspace) Close() {
	w.closeOne.Do(func() {
		w.CustomerField.Close()
		w.TicketForm.Close()
		w.CustomerForm.Close()
		w.ContactForm.Close()
		w.FinancialForm.Close()
		w.Views.Close()
		for _, stop := range w.stops {
			stop()
		}
	})
}
