// Package clock abstrae el tiempo para que las vistas derivadas (histograma de 7 días,
// próximos contactos) y el autocompletado (retardo de blur) sean deterministas en tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock es el contrato mínimo que usa la aplicación.
type Clock interface {
	Now() time.Time
	// AfterFunc ejecuta f cuando transcurre d. El Timer devuelto permite cancelarla.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer permite cancelar una llamada pendiente de AfterFunc.
type Timer interface {
	Stop() bool
}

// Real devuelve el reloj del sistema.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Fake es un reloj manual para tests: el tiempo solo avanza con Advance y las
// funciones de AfterFunc se ejecutan de forma síncrona dentro de Advance.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
}

// NewFake crea un reloj fijo en t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

// Now devuelve el instante actual del reloj.
func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set fija el instante actual sin disparar temporizadores.
func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// AfterFunc registra f para cuando el reloj avance d.
func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: f, seq: c.seq}
	c.pending = append(c.pending, t)
	return t
}

// Advance mueve el reloj d y ejecuta, en orden, los temporizadores vencidos.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	var due, rest []*fakeTimer
	for _, t := range c.pending {
		if !t.at.After(now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.pending = rest
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending devuelve cuántos temporizadores siguen sin dispararse.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

type fakeTimer struct {
	clock *Fake
	at    time.Time
	fn    func()
	seq   int
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	for i, p := range t.clock.pending {
		if p == t {
			t.clock.pending = append(t.clock.pending[:i], t.clock.pending[i+1:]...)
			return true
		}
	}
	return false
}
