package store_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/bione-api/internal/domain/entity"
)

var errBackendDown = errors.New("connection refused")

// fakeTable backend en memoria con ganchos para observar la store durante cada llamada.
type fakeTable[T any] struct {
	mu      sync.Mutex
	rows    []T
	key     func(T) int64
	withKey func(T, int64) T
	nextID  int64

	failList, failInsert, failUpdate, failDelete error

	onInsert func(T)
	onUpdate func(T)
	onDelete func(int64)

	calls   map[string]int
	ctxErrs []error
}

func newFakeTable[T any](key func(T) int64, withKey func(T, int64) T, rows ...T) *fakeTable[T] {
	f := &fakeTable[T]{key: key, withKey: withKey, rows: rows, calls: map[string]int{}, nextID: 100}
	return f
}

func (f *fakeTable[T]) record(op string, ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
}

func (f *fakeTable[T]) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeTable[T]) List(ctx context.Context) ([]T, error) {
	f.record("list", ctx)
	if f.failList != nil {
		return nil, f.failList
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]T, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeTable[T]) Insert(ctx context.Context, item T) (T, error) {
	f.record("insert", ctx)
	if f.onInsert != nil {
		f.onInsert(item)
	}
	var zero T
	if f.failInsert != nil {
		return zero, f.failInsert
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := f.withKey(item, f.nextID)
	f.rows = append([]T{created}, f.rows...)
	return created, nil
}

func (f *fakeTable[T]) Update(ctx context.Context, item T) error {
	f.record("update", ctx)
	if f.onUpdate != nil {
		f.onUpdate(item)
	}
	if f.failUpdate != nil {
		return f.failUpdate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rows {
		if f.key(r) == f.key(item) {
			f.rows[i] = item
		}
	}
	return nil
}

func (f *fakeTable[T]) Delete(ctx context.Context, id int64) error {
	f.record("delete", ctx)
	if f.onDelete != nil {
		f.onDelete(id)
	}
	if f.failDelete != nil {
		return f.failDelete
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.rows[:0:0]
	for _, r := range f.rows {
		if f.key(r) != id {
			out = append(out, r)
		}
	}
	f.rows = out
	return nil
}

func newTicketTable(rows ...entity.Ticket) *fakeTable[entity.Ticket] {
	return newFakeTable(entity.Ticket.Key, func(t entity.Ticket, id int64) entity.Ticket { t.ID = id; return t }, rows...)
}

func newCustomerTable(rows ...entity.Customer) *fakeTable[entity.Customer] {
	return newFakeTable(entity.Customer.Key, func(c entity.Customer, id int64) entity.Customer { c.ID = id; return c }, rows...)
}
