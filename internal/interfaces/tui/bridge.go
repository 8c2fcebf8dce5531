package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/application/workspace"
)

// changedMsg avisa que alguna fuente del workspace cambió. Las notificaciones se
// agrupan: mientras el modelo no consume una, las siguientes se descartan.
type changedMsg struct{}

// Changes puente entre las suscripciones síncronas del workspace y el bucle de
// mensajes de bubbletea.
type Changes struct {
	ch    chan struct{}
	done  chan struct{}
	stops []func()
	once  sync.Once
}

// WatchWorkspace se suscribe a las stores, la selección, el autocompletado, el
// formulario de chamados y el reloj de las vistas.
func WatchWorkspace(ws *workspace.Workspace) *Changes {
	c := &Changes{
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	sources := []reactive.Source{
		ws.Selection,
		ws.Customers,
		ws.Tickets,
		ws.Contacts,
		ws.Financials,
		ws.CustomerField,
		ws.TicketForm,
		ws.Views.Now,
	}
	for _, src := range sources {
		c.stops = append(c.stops, src.Watch(c.notify))
	}
	return c
}

func (c *Changes) notify() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

// Stop cancela las suscripciones y libera al comando que espera.
func (c *Changes) Stop() {
	c.once.Do(func() {
		for _, stop := range c.stops {
			stop()
		}
		close(c.done)
	})
}

// listen bloquea hasta el próximo cambio.
func (c *Changes) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-c.done:
			return nil
		default:
		}
		select {
		case <-c.ch:
			return changedMsg{}
		case <-c.done:
			return nil
		}
	}
}
