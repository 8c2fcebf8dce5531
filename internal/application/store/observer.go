package store

import "time"

// Observer recibe la telemetría de las stores. La implementación de Prometheus vive en
// infrastructure/metrics; por defecto se usa NopObserver.
type Observer interface {
	// ObserveOp registra una operación contra el backend con su duración y resultado.
	ObserveOp(store, op string, err error, elapsed time.Duration)
	// ObserveRollback registra que un cambio optimista se revirtió.
	ObserveRollback(store, op string)
	// ObserveSize publica el tamaño actual de la colección.
	ObserveSize(store string, n int)
}

// NopObserver descarta todo.
type NopObserver struct{}

func (NopObserver) ObserveOp(string, string, error, time.Duration) {}
func (NopObserver) ObserveRollback(string, string) {}
func (NopObserver) ObserveSize(string, int) {}
