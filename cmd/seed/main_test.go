package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

func TestWriteScript_SoloEsquema(t *testing.T) {
	var b strings.Builder
	require.NoError(t, writeScript(&b, nil, nil))

	out := b.String()
	for _, table := range []string{"clientes", "clientes_telefone", "chamados", "contato_cliente", "financeiro"} {
		assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.NotContains(t, out, "INSERT INTO")
	assert.NotContains(t, out, "setval")
}

func TestWriteScript_DatosDeEjemplo(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	var b strings.Builder
	require.NoError(t, writeScript(&b, store.SeedCustomers(), store.SeedTickets(now)))

	out := b.String()
	assert.Contains(t, out, "VALUES (1, 'Empresa X Ltda', 'Empresa X', 12345678900000, true, NULL, NULL)")
	assert.Contains(t, out, "VALUES (1, 1, '+5511999999999', 'João', 'joao@empresa.com', true)")
	assert.Contains(t, out, "'2025-03-14T15:00:00Z', 'Aberto', 1, 'Dúvidas'")
	assert.Contains(t, out, "setval('chamados_idchamado_seq'")
}

func TestQuote_EscapaYNull(t *testing.T) {
	assert.Equal(t, "NULL", quote("  "))
	assert.Equal(t, "'D''Ávila'", quote("D'Ávila"))
	assert.Equal(t, "NULL", sqlTaxID(entity.Customer{}))
}
