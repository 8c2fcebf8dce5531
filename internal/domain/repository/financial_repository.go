package repository

import "github.com/jhoicas/bione-api/internal/domain/entity"

// FinancialRepository define el puerto de persistencia para Financial (financeiro).
type FinancialRepository interface {
	Table[entity.Financial]
}
