package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/bione-api/internal/application/forms"
	"github.com/jhoicas/bione-api/internal/application/views"
	"github.com/jhoicas/bione-api/internal/domain/entity"
	"github.com/jhoicas/bione-api/pkg/money"
)

const (
	histogramWidth = 24
	maxDropdown    = 6
	dateLayout     = "02/01/2006"
)

// View implementa tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderCustomerField())
	b.WriteString("\n\n")

	switch m.tab {
	case TabOverview:
		b.WriteString(m.renderOverview())
	case TabTickets:
		b.WriteString(m.renderTickets())
	case TabCustomers:
		b.WriteString(m.renderCustomers())
	case TabContacts:
		b.WriteString(m.renderContacts())
	case TabFinancials:
		b.WriteString(m.renderFinancials())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	mode := "postgres"
	if m.ws.Local() {
		mode = "local"
	}
	return m.styles.Title.Render("BI One · painel") + "  " + m.styles.Faint.Render("["+mode+"]")
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if Tab(i) == m.tab {
			parts = append(parts, m.styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderCustomerField campo de cliente con la selección actual y, si está abierto,
// el dropdown de candidatos.
func (m Model) renderCustomerField() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("Cliente: "))
	b.WriteString(m.customer.View())
	if sel := m.ws.Selection.Get(); sel != nil {
		b.WriteString("  ")
		b.WriteString(m.styles.Badge.Render(sel.DisplayName()))
	} else {
		b.WriteString("  ")
		b.WriteString(m.styles.Faint.Render("todos os clientes"))
	}

	st := m.ws.CustomerField.State()
	if !st.Dropdown || len(st.Candidates) == 0 {
		return b.String()
	}
	lines := make([]string, 0, maxDropdown+1)
	for i, c := range st.Candidates {
		if i == maxDropdown {
			lines = append(lines, m.styles.Faint.Render(fmt.Sprintf("… %d mais", len(st.Candidates)-maxDropdown)))
			break
		}
		line := c.DisplayName()
		if c.TradeName != "" && c.TradeName != c.LegalName {
			line += m.styles.Faint.Render(" · " + c.TradeName)
		}
		if tax := c.TaxIDString(); tax != "" {
			line += m.styles.Faint.Render(" · " + tax)
		}
		if m.focus == FocusCustomer && i == m.suggestion {
			line = m.styles.Cursor.Render("› " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Dropdown.Render(strings.Join(lines, "\n")))
	return b.String()
}

func (m Model) renderOverview() string {
	o := m.ws.Views.Overview.Summary.Get()
	s := m.styles

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d  %s %.1fh\n",
		s.Label.Render("Chamados"), o.TicketsTotal,
		s.Label.Render("Abertos"), o.TicketsOpen,
		s.Label.Render("Fechados"), o.TicketsClosed,
		s.Label.Render("Resolução média"), o.AvgResolutionHours)
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d\n",
		s.Label.Render("Clientes"), o.CustomersTotal,
		s.Label.Render("Contatos"), o.ContactsTotal,
		s.Label.Render("Próximos contatos"), o.UpcomingFollowUps)
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n\n",
		s.Label.Render("Receitas"), s.Revenue.Render(money.Format(o.Revenue)),
		s.Label.Render("Despesas"), s.Expense.Render(money.Format(o.Expense)),
		s.Label.Render("Saldo"), money.Format(o.Balance))

	b.WriteString(s.Title.Render("Chamados por tipo"))
	b.WriteString("\n")
	if len(o.ByCategory) == 0 {
		b.WriteString(s.Faint.Render("  sem chamados"))
		b.WriteString("\n")
	}
	for _, c := range o.ByCategory {
		fmt.Fprintf(&b, "  %-20s %3d  %3d%%\n", c.Category, c.Count, c.Percent)
	}

	b.WriteString("\n")
	b.WriteString(s.Title.Render("Últimos dias (abertos / fechados)"))
	b.WriteString("\n")
	for _, d := range o.LastDays {
		fmt.Fprintf(&b, "  %s %s %d / %d\n", d.Label, s.Bar.Render(bar(d.Opened, o.MaxPerDay)), d.Opened, d.Closed)
	}
	return b.String()
}

// bar barra proporcional a n sobre top.
func bar(n, top int) string {
	if top < 1 {
		top = 1
	}
	w := min(n*histogramWidth/top, histogramWidth)
	return strings.Repeat("█", w) + strings.Repeat("·", histogramWidth-w)
}

func (m Model) renderTickets() string {
	s := m.styles
	var b strings.Builder

	open := m.ws.Views.Tickets.Open.Get()
	closed := m.ws.Views.Tickets.Closed.Get()
	cursor := m.cursor[TabTickets]

	fmt.Fprintf(&b, "%s (%d)\n", s.Title.Render("Abertos"), len(open))
	for i, r := range open {
		b.WriteString(m.ticketLine(r, i == cursor))
	}
	fmt.Fprintf(&b, "\n%s (%d)\n", s.Title.Render("Fechados"), len(closed))
	for i, r := range closed {
		b.WriteString(m.ticketLine(r, len(open)+i == cursor))
	}

	switch m.focus {
	case FocusTicketForm:
		b.WriteString("\n")
		b.WriteString(m.renderTicketForm())
	case FocusClosePrompt:
		b.WriteString("\n")
		b.WriteString(s.Panel.Render(fmt.Sprintf("Finalizar chamado %d\n%s %s", m.closingID, s.Label.Render("Solução:"), m.solution.View())))
	}
	return b.String()
}

func (m Model) ticketLine(r views.TicketRow, selected bool) string {
	category := r.Category
	if category == "" {
		category = "-"
	}
	line := fmt.Sprintf("%5d  %-32s %-16s %-24s %s",
		r.ID, truncate(r.Title, 32), truncate(category, 16), truncate(r.CustomerName, 24), r.OpenedAt.Format(dateLayout))
	if r.ID < 0 {
		line += " " + m.styles.Faint.Render("(enviando)")
	}
	return m.cursorLine(line, selected) + "  " + m.styles.ticketStatus(r.Status) + "\n"
}

func (m Model) renderTicketForm() string {
	s := m.styles
	st := m.ws.TicketForm.State()

	title := "Novo chamado"
	if st.Mode == forms.ModeEdit {
		title = fmt.Sprintf("Editar chamado %d", st.EditID)
	}
	customer := s.Faint.Render("(selecione um cliente)")
	if id := st.Draft.CustomerID; id != nil {
		if c, ok := m.ws.Customers.Find(*id); ok {
			customer = c.DisplayName()
		}
	}

	labels := [ticketFieldCount]string{"Título", "Descrição", "Tipo"}
	lines := []string{s.Title.Render(title), s.Label.Render("Cliente:") + " " + customer}
	for i, f := range m.fields {
		lines = append(lines, s.Label.Render(labels[i]+":")+" "+f.View())
	}
	return s.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCustomers() string {
	s := m.styles
	rows := m.ws.Views.Customers.Rows.Get()
	selID, hasSel := m.ws.Selection.ID()

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", s.Title.Render("Clientes"), len(rows))
	for i, c := range rows {
		phone := ""
		if len(c.Phones) > 0 {
			phone = c.Phones[0].Phone
		}
		line := fmt.Sprintf("%5d  %-32s %-20s %-15s %s",
			c.ID, truncate(c.LegalName, 32), truncate(c.TradeName, 20), c.TaxIDString(), phone)
		if hasSel && c.ID == selID {
			line += " " + s.Badge.Render("selecionado")
		}
		b.WriteString(m.cursorLine(line, i == m.cursor[TabCustomers]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderContacts() string {
	s := m.styles
	v := m.ws.Views.Contacts
	rows := v.Rows.Get()
	summary := v.Summary.Get()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d  %s %d\n", s.Label.Render("Total"), summary.Total, s.Label.Render("Próximos"), summary.Upcoming)
	for _, t := range summary.ByType {
		fmt.Fprintf(&b, "  %-12s %d\n", t.Type, t.Count)
	}
	b.WriteString("\n")
	for i, r := range rows {
		next := "-"
		if r.NextContactOn != nil {
			next = r.NextContactOn.Format(dateLayout)
		}
		line := fmt.Sprintf("%5d  %-10s %-28s %-24s %-16s %s",
			r.ID, r.Type, truncate(r.Subject, 28), truncate(r.CustomerName, 24), truncate(r.Responsible, 16), next)
		b.WriteString(m.cursorLine(line, i == m.cursor[TabContacts]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFinancials() string {
	s := m.styles
	v := m.ws.Views.Financials
	rows := v.Rows.Get()
	sum := v.Summary.Get()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s  %s %d\n\n",
		s.Label.Render("Receitas"), s.Revenue.Render(money.Format(sum.Revenue)),
		s.Label.Render("Despesas"), s.Expense.Render(money.Format(sum.Expense)),
		s.Label.Render("Saldo"), money.Format(sum.Balance),
		s.Label.Render("Pendentes"), sum.Pending)
	for i, r := range rows {
		amount := money.Format(r.Amount)
		if r.Kind == entity.FinancialExpense {
			amount = s.Expense.Render(amount)
		}
		line := fmt.Sprintf("%5d  %-28s %-24s %-8s %-9s",
			r.ID, truncate(r.Description, 28), truncate(r.CustomerName, 24), r.Kind, r.Status)
		b.WriteString(m.cursorLine(line, i == m.cursor[TabFinancials]))
		b.WriteString("  ")
		b.WriteString(amount)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	if m.status != "" {
		if m.statusErr {
			return m.styles.Error.Render(m.status)
		}
		return m.styles.Faint.Render(m.status)
	}
	var help string
	switch m.focus {
	case FocusCustomer:
		help = "↑/↓ candidatos · Enter escolher · Esc sair"
	case FocusTicketForm:
		help = "Tab campo · C-s guardar · Esc cancelar"
	case FocusClosePrompt:
		help = "Enter finalizar · Esc cancelar"
	default:
		help = "1-5 pestañas · / cliente · x limpiar · r recargar · q salir"
		switch m.tab {
		case TabTickets:
			help += " · n novo · e editar · f finalizar"
		case TabCustomers:
			help += " · Enter selecionar"
		}
	}
	return m.styles.Help.Render(help)
}

func (m Model) cursorLine(line string, selected bool) string {
	if selected && m.focus == FocusNav {
		return m.styles.Cursor.Render(line)
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
