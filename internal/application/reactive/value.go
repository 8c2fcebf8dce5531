package reactive

import "sync"

// Value contenedor observable con un único valor actual.
type Value[T any] struct {
	mu   sync.RWMutex
	v    T
	subs subscribers
}

// NewValue crea el contenedor con un valor inicial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Get devuelve el valor actual.
func (x *Value[T]) Get() T {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.v
}

// Set reemplaza el valor y notifica a los suscriptores.
func (x *Value[T]) Set(v T) {
	x.mu.Lock()
	x.v = v
	x.mu.Unlock()
	x.subs.notify()
}

// Update aplica fn de forma atómica sobre el valor actual, notifica y devuelve el nuevo valor.
// fn no debe acceder a este mismo Value.
func (x *Value[T]) Update(fn func(T) T) T {
	x.mu.Lock()
	x.v = fn(x.v)
	v := x.v
	x.mu.Unlock()
	x.subs.notify()
	return v
}

// Watch implementa Source.
func (x *Value[T]) Watch(fn func()) func() {
	return x.subs.add(fn)
}

// Subscribe registra fn con el valor nuevo en cada cambio.
func (x *Value[T]) Subscribe(fn func(T)) func() {
	return x.subs.add(func() { fn(x.Get()) })
}

// Subscribers devuelve cuántos observadores tiene el nodo.
func (x *Value[T]) Subscribers() int { return x.subs.count() }
