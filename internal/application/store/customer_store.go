package store

import (
	"context"

	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/internal/domain/repository"
	"github.com/jhoicas/bione-api/pkg/logger"
)

// CustomerStore colección de clientes (con sus teléfonos) ordenada por idcliente descendente.
type CustomerStore struct {
	*EntityStore[entity.Customer]
	phoneIDs IDGenerator
}

// NewCustomerStore construye la store. repo nil = modo local con el cliente de ejemplo.
func NewCustomerStore(repo repository.CustomerRepository, log *logger.Logger, obs Observer) *CustomerStore {
	seed := SeedCustomers()
	var phoneIDs []int64
	for _, c := range seed {
		for _, p := range c.Phones {
			phoneIDs = append(phoneIDs, p.ID)
		}
	}
	opts := Options[entity.Customer]{
		Name:     "clientes",
		Seed:     seed,
		Key:      entity.Customer.Key,
		WithKey:  func(c entity.Customer, id int64) entity.Customer { c.ID = id; return c },
		Clone:    entity.Customer.Clone,
		Logger:   log,
		Observer: obs,
	}
	if repo != nil {
		opts.Repo = repo
	}
	return &CustomerStore{EntityStore: NewEntityStore(opts), phoneIDs: SequenceAfter(phoneIDs...)}
}

// Add crea el cliente con sus teléfonos. En modo local los teléfonos reciben ids únicos.
func (s *CustomerStore) Add(ctx context.Context, c entity.Customer) (entity.Customer, error) {
	return s.EntityStore.Add(ctx, s.assignPhoneIDs(c))
}

// Update reemplaza los datos del cliente y su lista de teléfonos.
func (s *CustomerStore) Update(ctx context.Context, id int64, c entity.Customer) (entity.Customer, error) {
	return s.EntityStore.Update(ctx, id, s.assignPhoneIDs(c))
}

func (s *CustomerStore) assignPhoneIDs(c entity.Customer) entity.Customer {
	if !s.Local() {
		return c
	}
	c = c.Clone()
	for i := range c.Phones {
		if c.Phones[i].ID == 0 {
			c.Phones[i].ID = s.phoneIDs.Next()
		}
	}
	return c
}
