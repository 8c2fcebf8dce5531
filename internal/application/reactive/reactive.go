// Package reactive implementa contenedores observables y vistas derivadas con
// recálculo síncrono y ansioso: cada Set notifica a sus suscriptores en la misma
// pila de llamadas, sin agrupar ni retrasar, y cada Derived declara explícitamente
// las fuentes de las que depende.
//
// Las notificaciones se entregan siempre fuera de los locks internos, por lo que un
// suscriptor puede leer o escribir otros nodos. Un suscriptor no debe escribir el
// mismo nodo que lo notificó dentro de Update.
package reactive

import "sync"

// Source es cualquier nodo observable.
type Source interface {
	// Watch registra fn para cada cambio y devuelve la función que cancela el registro.
	Watch(fn func()) (stop func())
}

type subscriber struct {
	id int
	fn func()
}

// subscribers lista de callbacks en orden de registro.
type subscribers struct {
	mu   sync.Mutex
	next int
	list []subscriber
}

func (s *subscribers) add(fn func()) func() {
	s.mu.Lock()
	s.next++
	id := s.next
	s.list = append(s.list, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.list {
				if sub.id == id {
					s.list = append(s.list[:i:i], s.list[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *subscribers) notify() {
	s.mu.Lock()
	snapshot := make([]subscriber, len(s.list))
	copy(snapshot, s.list)
	s.mu.Unlock()
	for _, sub := range snapshot {
		sub.fn()
	}
}

func (s *subscribers) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

// Effect ejecuta fn ahora y cada vez que cambie alguna de las fuentes.
// Devuelve la función que detiene el efecto.
func Effect(fn func(), deps ...Source) (stop func()) {
	stops := make([]func(), 0, len(deps))
	for _, dep := range deps {
		stops = append(stops, dep.Watch(fn))
	}
	fn()
	return func() {
		for _, s := range stops {
			s()
		}
	}
}
