package store

import (
	"sync"

	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// SyncSelection mantiene la selección coherente con la lista de clientes: tras cada cambio
// de la colección, si el cliente seleccionado sigue presente se sustituye la copia por la
// versión de la lista; si estaba en la lista anterior y ya no está, la selección se limpia.
// Un cliente seleccionado que nunca estuvo en la lista (p. ej. antes del primer Load) se conserva.
func SyncSelection(sel *Selection, customers *CustomerStore) (stop func()) {
	var mu sync.Mutex
	known := idSet(customers.Items())

	return customers.Subscribe(func(list []entity.Customer) {
		mu.Lock()
		prev := known
		known = idSet(list)
		mu.Unlock()

		current := sel.Get()
		if current == nil {
			return
		}
		for _, c := range list {
			if c.ID == current.ID {
				if !c.Equal(*current) {
					sel.Set(&c)
				}
				return
			}
		}
		if _, was := prev[current.ID]; was {
			sel.Clear()
		}
	})
}

func idSet(list []entity.Customer) map[int64]struct{} {
	out := make(map[int64]struct{}, len(list))
	for _, c := range list {
		out[c.ID] = struct{}{}
	}
	return out
}
