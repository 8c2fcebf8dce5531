package repository

import "context"

// Table es el contrato CRUD mínimo que ofrece el backend relacional para una tabla:
// listar todo ordenado por recencia descendente, insertar devolviendo la fila,
// actualizar por id y eliminar por id.
type Table[T any] interface {
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id int64) error
}
