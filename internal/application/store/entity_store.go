package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bione-api/internal/application/reactive"
	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/domain/repository"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// Options configura una EntityStore.
type Options[T any] struct {
	// Name identifica la store en logs y métricas (nombre de la tabla).
	Name string
	// Repo es el backend. nil activa el modo local: la colección vive solo en memoria.
	Repo repository.Table[T]
	// Seed es la lista fija que se publica sin backend o si la primera lectura falla.
	Seed []T
	// Key y WithKey leen y asignan el identificador del registro.
	Key     func(T) int64
	WithKey func(T, int64) T
	// Clone copia un registro para que nadie comparta memoria con la store. Opcional.
	Clone func(T) T
	// IDs asigna identificadores en modo local. Si es nil se usa max(seed)+1.
	IDs      IDGenerator
	Logger   *logger.Logger
	Observer Observer
}

// EntityStore mantiene la colección observable de un tipo de registro sincronizada con su tabla.
//
// Todas las mutaciones siguen la misma política optimista: el cambio se publica primero
// en la colección local, luego se confirma contra el backend; si el backend lo acepta se
// recarga la colección completa, y si falla se revierte solo el cambio propio y se devuelve
// el error. Las mutaciones ignoran la cancelación del contexto del llamador: una vez
// iniciada, la escritura llega al final o a un error capturado.
type EntityStore[T any] struct {
	name    string
	repo    repository.Table[T]
	seed    []T
	key     func(T) int64
	withKey func(T, int64) T
	clone   func(T) T
	ids     IDGenerator
	tmp     Provisional
	items   *reactive.Value[[]T]
	loaded  atomic.Bool
	log     *logger.Logger
	obs     Observer
}

// NewEntityStore construye la store. La colección empieza vacía hasta el primer Load
// (en modo local, también hasta la primera mutación).
func NewEntityStore[T any](opts Options[T]) *EntityStore[T] {
	s := &EntityStore[T]{
		name:    opts.Name,
		repo:    opts.Repo,
		key:     opts.Key,
		withKey: opts.WithKey,
		clone:   opts.Clone,
		ids:     opts.IDs,
		items:   reactive.NewValue[[]T](nil),
		log:     opts.Logger,
		obs:     opts.Observer,
	}
	if s.clone == nil {
		s.clone = func(v T) T { return v }
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.Component("store." + opts.Name)
	if s.obs == nil {
		s.obs = NopObserver{}
	}
	s.seed = s.copyAll(opts.Seed)
	if s.ids == nil {
		ids := make([]int64, 0, len(opts.Seed))
		for _, v := range opts.Seed {
			ids = append(ids, s.key(v))
		}
		s.ids = SequenceAfter(ids...)
	}
	return s
}

// Name devuelve el nombre de la store.
func (s *EntityStore[T]) Name() string { return s.name }

// Local indica si la store trabaja sin backend.
func (s *EntityStore[T]) Local() bool { return s.repo == nil }

// Loaded indica si ya se publicó alguna colección.
func (s *EntityStore[T]) Loaded() bool { return s.loaded.Load() }

// Items devuelve la colección actual. El slice no debe modificarse: cada cambio publica uno nuevo.
func (s *EntityStore[T]) Items() []T { return s.items.Get() }

// Watch implementa reactive.Source.
func (s *EntityStore[T]) Watch(fn func()) func() { return s.items.Watch(fn) }

// Subscribe registra fn con la colección nueva en cada cambio.
func (s *EntityStore[T]) Subscribe(fn func([]T)) func() { return s.items.Subscribe(fn) }

// Find busca un registro por id.
func (s *EntityStore[T]) Find(id int64) (T, bool) {
	for _, v := range s.items.Get() {
		if s.key(v) == id {
			return s.clone(v), true
		}
	}
	var zero T
	return zero, false
}

// Load reemplaza la colección con el contenido del backend.
// Sin backend publica la semilla la primera vez y después no hace nada, así que llamar
// Load varias veces nunca duplica registros. Si la lectura falla y todavía no se había
// cargado nada, se publica la semilla; si ya había datos se conservan.
func (s *EntityStore[T]) Load(ctx context.Context) error {
	if s.repo == nil {
		s.seedLocal()
		return nil
	}

	start := time.Now()
	list, err := s.repo.List(ctx)
	s.obs.ObserveOp(s.name, "load", err, time.Since(start))
	if err != nil {
		s.log.Error().Err(err).Str("store", s.name).Str("op", "load").Msg("fallo al leer del backend")
		if s.loaded.CompareAndSwap(false, true) {
			s.publish(s.copyAll(s.seed))
			s.log.Warn().Int("items", len(s.seed)).Msg("usando semilla tras fallo de lectura")
		}
		return fmt.Errorf("cargar %s: %w: %w", s.name, domain.ErrBackend, err)
	}
	s.loaded.Store(true)
	s.publish(list)
	return nil
}

// seedLocal publica la semilla si la store local todavía no tiene colección. Las mutaciones
// locales la llaman antes de tocar los ítems para que un Load posterior no las pise.
func (s *EntityStore[T]) seedLocal() {
	if s.loaded.CompareAndSwap(false, true) {
		s.publish(s.copyAll(s.seed))
		s.log.Info().Int("items", len(s.seed)).Msg("modo local: semilla publicada")
	}
}

// Add inserta un registro. En modo local se le asigna un id del generador; con backend se
// publica un placeholder con id provisional negativo hasta que la inserción se confirma.
// Si falla, el placeholder se retira y no se devuelve ningún registro.
func (s *EntityStore[T]) Add(ctx context.Context, item T) (T, error) {
	ctx = context.WithoutCancel(ctx)
	var zero T

	if s.repo == nil {
		s.seedLocal()
		created := s.withKey(s.clone(item), s.ids.Next())
		s.items.Update(func(cur []T) []T { return prepend(cur, created) })
		s.afterChange()
		return s.clone(created), nil
	}

	opID := uuid.NewString()
	tmpID := s.tmp.Next()
	placeholder := s.withKey(s.clone(item), tmpID)
	s.items.Update(func(cur []T) []T { return prepend(cur, placeholder) })
	s.afterChange()

	start := time.Now()
	created, err := s.repo.Insert(ctx, s.withKey(s.clone(item), 0))
	s.obs.ObserveOp(s.name, "add", err, time.Since(start))
	if err != nil {
		s.items.Update(func(cur []T) []T { return s.without(cur, tmpID) })
		s.afterChange()
		s.obs.ObserveRollback(s.name, "add")
		s.log.Error().Err(err).Str("store", s.name).Str("op", "add").Str("op_id", opID).Msg("fallo al insertar; placeholder retirado")
		return zero, fmt.Errorf("insertar en %s: %w", s.name, wrapBackend(err))
	}

	if err := s.reload(ctx); err != nil {
		// El backend ya aceptó la fila: se sustituye el placeholder por la fila devuelta.
		s.items.Update(func(cur []T) []T { return s.replace(cur, tmpID, created) })
		s.afterChange()
		s.log.Warn().Err(err).Str("op_id", opID).Msg("recarga tras insertar falló; se conserva la fila devuelta")
	}
	return s.clone(created), nil
}

// Update reemplaza el registro id. El cambio es visible antes de contactar al backend;
// si el backend falla se restaura el registro anterior.
func (s *EntityStore[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	ctx = context.WithoutCancel(ctx)
	var zero T
	if s.repo == nil {
		s.seedLocal()
	}
	next := s.withKey(s.clone(item), id)

	var prev T
	var found bool
	s.items.Update(func(cur []T) []T {
		idx := s.indexOf(cur, id)
		if idx < 0 {
			return cur
		}
		found = true
		prev = cur[idx]
		return s.replace(cur, id, next)
	})
	if !found {
		return zero, fmt.Errorf("%s %d: %w", s.name, id, domain.ErrNotFound)
	}
	s.afterChange()

	if s.repo == nil {
		return s.clone(next), nil
	}

	start := time.Now()
	err := s.repo.Update(ctx, next)
	s.obs.ObserveOp(s.name, "update", err, time.Since(start))
	if err != nil {
		s.items.Update(func(cur []T) []T { return s.replace(cur, id, prev) })
		s.afterChange()
		s.obs.ObserveRollback(s.name, "update")
		s.log.Error().Err(err).Str("store", s.name).Str("op", "update").Int64("id", id).Msg("fallo al actualizar; cambio revertido")
		return zero, fmt.Errorf("actualizar %s %d: %w", s.name, id, wrapBackend(err))
	}

	if err := s.reload(ctx); err != nil {
		s.log.Warn().Err(err).Int64("id", id).Msg("recarga tras actualizar falló; se conserva el cambio local")
	}
	if v, ok := s.Find(id); ok {
		return v, nil
	}
	return s.clone(next), nil
}

// Remove elimina el registro id. Si el backend falla, el registro vuelve a su posición.
func (s *EntityStore[T]) Remove(ctx context.Context, id int64) error {
	ctx = context.WithoutCancel(ctx)
	if s.repo == nil {
		s.seedLocal()
	}

	var prev T
	idx := -1
	s.items.Update(func(cur []T) []T {
		idx = s.indexOf(cur, id)
		if idx < 0 {
			return cur
		}
		prev = cur[idx]
		return s.without(cur, id)
	})
	if idx < 0 {
		return fmt.Errorf("%s %d: %w", s.name, id, domain.ErrNotFound)
	}
	s.afterChange()

	if s.repo == nil {
		return nil
	}

	start := time.Now()
	err := s.repo.Delete(ctx, id)
	s.obs.ObserveOp(s.name, "remove", err, time.Since(start))
	if err != nil {
		s.items.Update(func(cur []T) []T { return insertAt(cur, idx, prev) })
		s.afterChange()
		s.obs.ObserveRollback(s.name, "remove")
		s.log.Error().Err(err).Str("store", s.name).Str("op", "remove").Int64("id", id).Msg("fallo al eliminar; registro restaurado")
		return fmt.Errorf("eliminar %s %d: %w", s.name, id, wrapBackend(err))
	}

	if err := s.reload(ctx); err != nil {
		s.log.Warn().Err(err).Int64("id", id).Msg("recarga tras eliminar falló")
	}
	return nil
}

// reload relee la tabla tras una escritura confirmada. En caso de error no toca la colección.
func (s *EntityStore[T]) reload(ctx context.Context) error {
	start := time.Now()
	list, err := s.repo.List(ctx)
	s.obs.ObserveOp(s.name, "reload", err, time.Since(start))
	if err != nil {
		return err
	}
	s.publish(list)
	return nil
}

func (s *EntityStore[T]) publish(list []T) {
	if list == nil {
		list = []T{}
	}
	s.items.Set(list)
	s.afterChange()
}

func (s *EntityStore[T]) afterChange() {
	s.obs.ObserveSize(s.name, len(s.items.Get()))
}

func (s *EntityStore[T]) copyAll(in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = s.clone(v)
	}
	return out
}

func (s *EntityStore[T]) indexOf(list []T, id int64) int {
	for i, v := range list {
		if s.key(v) == id {
			return i
		}
	}
	return -1
}

func (s *EntityStore[T]) replace(list []T, id int64, v T) []T {
	out := make([]T, len(list))
	copy(out, list)
	if i := s.indexOf(out, id); i >= 0 {
		out[i] = v
	}
	return out
}

func (s *EntityStore[T]) without(list []T, id int64) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if s.key(v) != id {
			out = append(out, v)
		}
	}
	return out
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

func insertAt[T any](list []T, idx int, v T) []T {
	if idx > len(list) {
		idx = len(list)
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, v)
	return append(out, list[idx:]...)
}

func wrapBackend(err error) error {
	if errors.Is(err, domain.ErrBackend) || errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrBackend, err)
}
