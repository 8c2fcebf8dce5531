package store

import "sync/atomic"

// IDGenerator entrega identificadores para registros creados sin backend.
type IDGenerator interface {
	Next() int64
}

// Sequence contador monótono seguro para concurrencia.
type Sequence struct {
	next atomic.Int64
}

// NewSequence crea una secuencia cuyo primer valor es start.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.next.Store(start - 1)
	return s
}

// SequenceAfter crea una secuencia que empieza en max(ids)+1 (o en 1 si no hay ids).
func SequenceAfter(ids ...int64) *Sequence {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return NewSequence(max + 1)
}

// Next devuelve el siguiente identificador.
func (s *Sequence) Next() int64 { return s.next.Add(1) }

// Provisional genera ids negativos (-1, -2, ...) para los placeholders optimistas
// que se muestran mientras el backend confirma una inserción. Nunca colisionan con ids reales.
type Provisional struct {
	next atomic.Int64
}

// Next devuelve el siguiente id provisional.
func (p *Provisional) Next() int64 { return p.next.Add(-1) }
