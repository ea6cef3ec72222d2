package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/purchase"
)

var statusFilters = []purchase.Status{
	"",
	purchase.StatusActive,
	purchase.StatusOverdue,
	purchase.StatusCompleted,
	purchase.StatusDefaulted,
	purchase.StatusCancelled,
}

type purchasesState int

const (
	purchasesStateBrowse purchasesState = iota
	purchasesStateDefault
)

// PurchasesModel browses the shop's purchases by effective status and lets
// an admin write off an overdue one.
type PurchasesModel struct {
	CommonModel
	svc   Ledger
	actor auth.Actor

	state     purchasesState
	table     table.Model
	views     []*ledger.PurchaseView
	form      *huh.Form
	filterIdx int

	loading bool
	err     error
	status  string
}

func NewPurchasesModel(svc Ledger, actor auth.Actor) PurchasesModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 10},
			{Title: "Type", Width: 8},
			{Title: "Status", Width: 10},
			{Title: "Total", Width: 12},
			{Title: "Paid", Width: 12},
			{Title: "Due", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return PurchasesModel{svc: svc, actor: actor, table: t, loading: true}
}

func (m PurchasesModel) Title() string { return "Purchases" }

func (m PurchasesModel) ShortHelp() string {
	if m.state == purchasesStateDefault {
		return "Confirm write-off | Esc: cancel"
	}

	return "Esc: back | s: status filter | d: mark defaulted | l: reload"
}

func (m PurchasesModel) Init() tea.Cmd {
	return m.loadCmd()
}

type purchasesLoadedMsg struct {
	views []*ledger.PurchaseView
	err   error
}

type defaultedMsg struct {
	err error
}

func (m PurchasesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case purchasesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.views = msg.views
		m.refreshTable()

		return m, nil

	case defaultedMsg:
		m.state = purchasesStateBrowse
		m.form = nil
		m.table.Focus()

		m.status = "Marked defaulted."
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not mark defaulted: %v", msg.err)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == purchasesStateDefault {
		return m.updateDefault(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "l":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.filterIdx = (m.filterIdx + 1) % len(statusFilters)
			m.loading = true

			return m, m.loadCmd()
		case "d":
			return m.enterDefaultMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PurchasesModel) enterDefaultMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.views) {
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Write off purchase %s?", shortID(m.views[idx].Purchase.ID))).
				Affirmative("Default").
				Negative("Keep"),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = purchasesStateDefault
	m.table.Blur()

	return m, m.form.Init()
}

func (m PurchasesModel) updateDefault(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = purchasesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	idx := m.table.Cursor()
	if !m.form.GetBool("confirm") || idx < 0 || idx >= len(m.views) {
		m.state = purchasesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.markDefaultedCmd(m.views[idx].Purchase)
}

func (m PurchasesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading purchases...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	label := "All"
	if f := statusFilters[m.filterIdx]; f != "" {
		label = string(f)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(label))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	if m.state == purchasesStateDefault && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *PurchasesModel) refreshTable() {
	rows := make([]table.Row, len(m.views))
	for i, v := range m.views {
		due := "-"
		if v.Purchase.DueDate != nil {
			due = FormatDate(*v.Purchase.DueDate)
		}

		rows[i] = table.Row{
			shortID(v.Purchase.ID),
			string(v.Purchase.Type),
			string(v.Status),
			FormatAmount(v.Purchase.Total),
			FormatAmount(v.Purchase.AmountPaid),
			due,
		}
	}

	m.table.SetRows(rows)
}

func (m PurchasesModel) loadCmd() tea.Cmd {
	filter := ledger.PurchaseFilter{}
	if m.actor.Role != auth.RoleOwner {
		filter.ShopID = m.actor.ShopID
	}

	if f := statusFilters[m.filterIdx]; f != "" {
		filter.Status = &f
	}

	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		views, err := m.svc.ListPurchases(ctx, filter)

		return purchasesLoadedMsg{views: views, err: err}
	}
}

func (m PurchasesModel) markDefaultedCmd(p *purchase.Purchase) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		_, err := m.svc.MarkDefaulted(ctx, m.actor, p.ID)

		return defaultedMsg{err: err}
	}
}
