package store

import (
	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// Selection guarda el cliente seleccionado globalmente (o ninguno). Guarda una copia
// completa del cliente, no solo el id, y nunca contacta al backend: cambiarla solo
// provoca el recálculo de quienes la observan.
type Selection struct {
	v *reactive.Value[*entity.Customer]
}

// NewSelection crea la selección vacía.
func NewSelection() *Selection {
	return &Selection{v: reactive.NewValue[*entity.Customer](nil)}
}

// Get devuelve una copia del cliente seleccionado o nil.
func (s *Selection) Get() *entity.Customer {
	c := s.v.Get()
	if c == nil {
		return nil
	}
	out := c.Clone()
	return &out
}

// ID devuelve el id seleccionado.
func (s *Selection) ID() (int64, bool) {
	c := s.v.Get()
	if c == nil {
		return 0, false
	}
	return c.ID, true
}

// Set reemplaza la selección; nil la limpia.
func (s *Selection) Set(c *entity.Customer) {
	if c == nil {
		s.v.Set(nil)
		return
	}
	cp := c.Clone()
	s.v.Set(&cp)
}

// Clear limpia la selección.
func (s *Selection) Clear() { s.v.Set(nil) }

// Watch implementa reactive.Source.
func (s *Selection) Watch(fn func()) func() { return s.v.Watch(fn) }

// Subscribe registra fn con la selección nueva.
func (s *Selection) Subscribe(fn func(*entity.Customer)) func() {
	return s.v.Watch(func() { fn(s.Get()) })
}
