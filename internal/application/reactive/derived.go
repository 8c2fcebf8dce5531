package reactive

import "sync"

// Derived vista calculada a partir de otras fuentes. Se recalcula de inmediato cada
// vez que una dependencia notifica y mantiene el último resultado para lecturas.
type Derived[T any] struct {
	compute sync.Mutex // serializa recálculos para que gane siempre el más reciente
	mu      sync.RWMutex
	fn      func() T
	v       T
	runs    int
	subs    subscribers
	stops   []func()
}

// Derive crea el nodo, lo calcula una vez y empieza a observar deps.
func Derive[T any](fn func() T, deps ...Source) *Derived[T] {
	d := &Derived[T]{fn: fn}
	d.recompute()
	for _, dep := range deps {
		d.stops = append(d.stops, dep.Watch(d.recompute))
	}
	return d
}

func (d *Derived[T]) recompute() {
	d.compute.Lock()
	v := d.fn()
	d.mu.Lock()
	d.v = v
	d.runs++
	d.mu.Unlock()
	d.compute.Unlock()
	d.subs.notify()
}

// Get devuelve el último valor calculado.
func (d *Derived[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.v
}

// Runs devuelve cuántas veces se ha ejecutado la derivación.
func (d *Derived[T]) Runs() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.runs
}

// Watch implementa Source.
func (d *Derived[T]) Watch(fn func()) func() {
	return d.subs.add(fn)
}

// Subscribe registra fn con el valor recalculado.
func (d *Derived[T]) Subscribe(fn func(T)) func() {
	return d.subs.add(func() { fn(d.Get()) })
}

// Close deja de observar las dependencias; el último valor sigue disponible.
func (d *Derived[T]) Close() {
	for _, s := range d.stops {
		s()
	}
	d.stops = nil
}
