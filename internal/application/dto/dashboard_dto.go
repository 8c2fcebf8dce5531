package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bione-api/internal/application/views"
)

// OverviewResponse GET /api/telas/overview.
// Con un cliente seleccionado los indicadores se restringen a ese cliente, salvo clientes_total.
type OverviewResponse struct {
	// Chamados
	ChamadosTotal       int     `json:"chamados_total"`
	ChamadosAbertos     int     `json:"chamados_abertos"`
	ChamadosFechados    int     `json:"chamados_fechados"`
	MediaResolucaoHoras float64 `json:"media_resolucao_horas"`

	ClientesTotal int `json:"clientes_total"`

	// Financeiro (solo lanzamientos pagos)
	Receitas decimal.Decimal `json:"receitas"`
	Despesas decimal.Decimal `json:"despesas"`
	Saldo    decimal.Decimal `json:"saldo"`

	ContatosTotal    int `json:"contatos_total"`
	ProximosContatos int `json:"proximos_contatos"`

	PorTipo      []CategoryDTO `json:"por_tipo"`       // ordenado por cantidad desc
	UltimosDias  []DayDTO      `json:"ultimos_dias"`   // 7 días, el último es hoy
	MaximoPorDia int           `json:"maximo_por_dia"` // escala del histograma, >= 1
}

// CategoryDTO chamados por tipo.
type CategoryDTO struct {
	Tipo       string `json:"tipo"`
	Quantidade int    `json:"quantidade"`
	Percentual int    `json:"percentual"`
}

// DayDTO barra del histograma.
type DayDTO struct {
	Dia      string `json:"dia"`   // YYYY-MM-DD
	Label    string `json:"label"` // dd/MM
	Abertos  int    `json:"abertos"`
	Fechados int    `json:"fechados"`
}

// NewOverviewResponse mapea el agregado de la pantalla inicial.
func NewOverviewResponse(o views.Overview) OverviewResponse {
	out := OverviewResponse{
		ChamadosTotal:       o.TicketsTotal,
		ChamadosAbertos:     o.TicketsOpen,
		ChamadosFechados:    o.TicketsClosed,
		MediaResolucaoHoras: o.AvgResolutionHours,
		ClientesTotal:       o.CustomersTotal,
		Receitas:            o.Revenue,
		Despesas:            o.Expense,
		Saldo:               o.Balance,
		ContatosTotal:       o.ContactsTotal,
		ProximosContatos:    o.UpcomingFollowUps,
		PorTipo:             make([]CategoryDTO, 0, len(o.ByCategory)),
		UltimosDias:         make([]DayDTO, 0, len(o.LastDays)),
		MaximoPorDia:        o.MaxPerDay,
	}
	for _, c := range o.ByCategory {
		out.PorTipo = append(out.PorTipo, CategoryDTO{Tipo: c.Category, Quantidade: c.Count, Percentual: c.Percent})
	}
	for _, d := range o.LastDays {
		out.UltimosDias = append(out.UltimosDias, DayDTO{Dia: FormatDate(d.Day), Label: d.Label, Abertos: d.Opened, Fechados: d.Closed})
	}
	return out
}

// TicketsScreenResponse GET /api/telas/chamados.
type TicketsScreenResponse struct {
	Filtros  views.TicketFilters `json:"filtros"`
	Abertos  []TicketResponse    `json:"abertos"`
	Fechados []TicketResponse    `json:"fechados"`
}

// CustomersScreenResponse GET /api/telas/clientes.
type CustomersScreenResponse struct {
	Filtros  views.CustomerFilters `json:"filtros"`
	Clientes []CustomerResponse    `json:"clientes"`
}

// ContactsScreenResponse GET /api/telas/contatos.
type ContactsScreenResponse struct {
	Filtros  views.ContactFilters `json:"filtros"`
	Contatos []ContactResponse    `json:"contatos"`
	Proximos []ContactResponse    `json:"proximos"`
	Resumo   ContactSummaryDTO    `json:"resumo"`
}

// ContactSummaryDTO totales de la pantalla de contactos.
type ContactSummaryDTO struct {
	Total    int            `json:"total"`
	PorTipo  map[string]int `json:"por_tipo"`
	Proximos int            `json:"proximos"`
}

// FinancialScreenResponse GET /api/telas/financeiro.
type FinancialScreenResponse struct {
	Filtros     views.FinancialFilters `json:"filtros"`
	Lancamentos []FinancialResponse    `json:"lancamentos"`
	Resumo      FinancialSummaryDTO    `json:"resumo"`
}

// NewTicketRows mapea filas de la vista de chamados.
func NewTicketRows(rows []views.TicketRow) []TicketResponse {
	out := make([]TicketResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewTicketResponse(r.Ticket, r.CustomerName))
	}
	return out
}

// NewContactRows mapea filas de la vista de contactos.
func NewContactRows(rows []views.ContactRow) []ContactResponse {
	out := make([]ContactResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewContactResponse(r.Contact, r.CustomerName))
	}
	return out
}

// NewContactSummary mapea el resumen de contactos.
func NewContactSummary(s views.ContactSummary) ContactSummaryDTO {
	out := ContactSummaryDTO{Total: s.Total, Proximos: s.Upcoming, PorTipo: make(map[string]int, len(s.ByType))}
	for _, t := range s.ByType {
		out.PorTipo[t.Type] = t.Count
	}
	return out
}

// NewFinancialRows mapea filas de la vista financiera.
func NewFinancialRows(rows []views.FinancialRow) []FinancialResponse {
	out := make([]FinancialResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewFinancialResponse(r.Financial, r.CustomerName))
	}
	return out
}

// NewFinancialSummary mapea los totales financieros.
func NewFinancialSummary(s views.FinancialSummary) FinancialSummaryDTO {
	return FinancialSummaryDTO{Receitas: s.Revenue, Despesas: s.Expense, Saldo: s.Balance, Pendentes: s.Pending, Total: s.Total}
}
