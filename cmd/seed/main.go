// seed genera el script SQL con el esquema de BI One (clientes, clientes_telefone, chamados,
// contato_cliente y financeiro) y, opcionalmente, los mismos registros de ejemplo que usa el
// modo local.
//
// Uso: go run ./cmd/seed [--sin-datos] [--out ruta.sql]
// Por defecto escribe internal/infrastructure/postgres/migrations/001_bione.sql
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/jhoicas/bione-api/internal/application/store"
	"github.com/jhoicas/bione-api/internal/domain/entity"
)

const schema = `-- Esquema BI One
CREATE TABLE IF NOT EXISTS clientes (
  idcliente   BIGSERIAL PRIMARY KEY,
  razao       TEXT NOT NULL,
  fantasia    TEXT,
  cpcn        BIGINT UNIQUE,
  ativo       BOOLEAN NOT NULL DEFAULT TRUE,
  email       TEXT,
  observacoes TEXT
);

CREATE TABLE IF NOT EXISTS clientes_telefone (
  idtelefone  BIGSERIAL PRIMARY KEY,
  idcliente   BIGINT NOT NULL REFERENCES clientes (idcliente) ON DELETE CASCADE,
  celular     TEXT,
  responsavel TEXT,
  email       TEXT,
  ativo       BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS chamados (
  idchamado      BIGSERIAL PRIMARY KEY,
  titulo         TEXT NOT NULL,
  descricao      TEXT,
  dataabertura   TIMESTAMPTZ NOT NULL DEFAULT now(),
  datafechamento TIMESTAMPTZ,
  status         TEXT NOT NULL DEFAULT 'Aberto' CHECK (status IN ('Aberto', 'Fechado')),
  solucao        TEXT,
  idcliente      BIGINT NOT NULL REFERENCES clientes (idcliente),
  tipo           TEXT
);

CREATE TABLE IF NOT EXISTS contato_cliente (
  idcontato            BIGSERIAL PRIMARY KEY,
  idcliente            BIGINT NOT NULL REFERENCES clientes (idcliente),
  tipo                 TEXT NOT NULL,
  assunto              TEXT NOT NULL,
  descricao            TEXT,
  data_cadastro        DATE NOT NULL DEFAULT CURRENT_DATE,
  responsavel          TEXT,
  data_proximo_contato DATE,
  observacoes          TEXT,
  ativo                BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS financeiro (
  idfinanceiro  BIGSERIAL PRIMARY KEY,
  idcliente     BIGINT NOT NULL REFERENCES clientes (idcliente),
  descricao     TEXT NOT NULL,
  valor         NUMERIC(14, 2) NOT NULL,
  tipo          TEXT NOT NULL,
  data_cadastro DATE NOT NULL DEFAULT CURRENT_DATE,
  status        TEXT NOT NULL,
  vencimento    DATE,
  observacoes   TEXT,
  ativo         BOOLEAN NOT NULL DEFAULT TRUE
);
`

func main() {
	noData := flag.Bool("sin-datos", false, "solo el esquema, sin registros de ejemplo")
	outPath := flag.String("out", "", "archivo de salida (por defecto migrations/001_bione.sql)")
	flag.Parse()

	path := *outPath
	if path == "" {
		path = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "001_bione.sql")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	customers := store.SeedCustomers()
	tickets := store.SeedTickets(time.Now())
	if *noData {
		customers, tickets = nil, nil
	}
	if err := writeScript(out, customers, tickets); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir script: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d clientes, %d chamados\n", path, len(customers), len(tickets))
}

// writeScript escribe el esquema y los INSERT idempotentes de los registros dados.
func writeScript(w io.Writer, customers []entity.Customer, tickets []entity.Ticket) error {
	var b strings.Builder
	b.WriteString(schema)

	if len(customers) > 0 {
		b.WriteString("\n-- Clientes de ejemplo\n")
	}
	for _, c := range customers {
		fmt.Fprintf(&b, "INSERT INTO clientes (idcliente, razao, fantasia, cpcn, ativo, email, observacoes)\n")
		fmt.Fprintf(&b, "VALUES (%d, %s, %s, %s, %t, %s, %s)\nON CONFLICT (idcliente) DO NOTHING;\n",
			c.ID, quote(c.LegalName), quote(c.TradeName), sqlTaxID(c), c.Active, quote(c.Email), quote(c.Notes))
		for _, p := range c.Phones {
			fmt.Fprintf(&b, "INSERT INTO clientes_telefone (idtelefone, idcliente, celular, responsavel, email, ativo)\n")
			fmt.Fprintf(&b, "VALUES (%d, %d, %s, %s, %s, %t)\nON CONFLICT (idtelefone) DO NOTHING;\n",
				p.ID, c.ID, quote(p.Phone), quote(p.Responsible), quote(p.Email), p.Active)
		}
	}

	if len(tickets) > 0 {
		b.WriteString("\n-- Chamados de ejemplo\n")
	}
	for _, t := range tickets {
		fmt.Fprintf(&b, "INSERT INTO chamados (idchamado, titulo, descricao, dataabertura, status, idcliente, tipo)\n")
		fmt.Fprintf(&b, "VALUES (%d, %s, %s, %s, %s, %d, %s)\nON CONFLICT (idchamado) DO NOTHING;\n",
			t.ID, quote(t.Title), quote(t.Description), quote(t.OpenedAt.Format(time.RFC3339)),
			quote(string(t.Status)), t.CustomerID, quote(t.Category))
	}

	// Los BIGSERIAL quedan detrás de los ids explícitos.
	if len(customers) > 0 || len(tickets) > 0 {
		b.WriteString("\nSELECT setval('clientes_idcliente_seq', (SELECT COALESCE(MAX(idcliente), 1) FROM clientes));\n")
		b.WriteString("SELECT setval('clientes_telefone_idtelefone_seq', (SELECT COALESCE(MAX(idtelefone), 1) FROM clientes_telefone));\n")
		b.WriteString("SELECT setval('chamados_idchamado_seq', (SELECT COALESCE(MAX(idchamado), 1) FROM chamados));\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// quote devuelve un literal SQL; el texto vacío se escribe como NULL.
func quote(s string) string {
	if strings.TrimSpace(s) == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sqlTaxID(c entity.Customer) string {
	if c.TaxID == nil {
		return "NULL"
	}
	return c.TaxIDString()
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
