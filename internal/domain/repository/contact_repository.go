package repository

import "github.com/jhoicas/bione-api/internal/domain/entity"

// ContactRepository define el puerto de persistencia para Contact (contato_cliente).
type ContactRepository interface {
	Table[entity.Contact]
}
