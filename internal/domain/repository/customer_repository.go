package repository

import "github.com/jhoicas/bione-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer (clientes + clientes_telefone).
// Insert y Update persisten también los teléfonos; Delete elimina primero los teléfonos (FK).
type CustomerRepository interface {
	Table[entity.Customer]
}
