package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/payment"
	"github.com/MrJamesThe3rd/layby/internal/wallet"
)

// QueueKind selects which awaiting items a queue shows.
type QueueKind int

const (
	QueuePayments QueueKind = iota
	QueueDeposits
)

type queueState int

const (
	queueStateBrowse queueState = iota
	queueStateReject
	queueStateBusy
)

// entry is one awaiting payment or deposit as shown in the table.
type entry struct {
	ID        uuid.UUID
	Recorded  time.Time
	Owner     uuid.UUID // purchase for payments, customer for deposits
	Amount    decimal.Decimal
	Method    string
	Reference string
}

// QueueModel lists what is waiting for confirmation in the actor's shop and
// lets an admin confirm or reject each item.
type QueueModel struct {
	CommonModel
	svc   Ledger
	actor auth.Actor
	kind  QueueKind

	state   queueState
	table   table.Model
	entries []entry
	form    *huh.Form
	spinner spinner.Model

	loading bool
	err     error
	status  string
}

func NewQueueModel(svc Ledger, actor auth.Actor, kind QueueKind) QueueModel {
	owner := "Purchase"
	if kind == QueueDeposits {
		owner = "Customer"
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Recorded", Width: 17},
			{Title: owner, Width: 10},
			{Title: "Amount", Width: 12},
			{Title: "Method", Width: 14},
			{Title: "Reference", Width: 24},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return QueueModel{
		svc:     svc,
		actor:   actor,
		kind:    kind,
		table:   t,
		spinner: sp,
		loading: true,
	}
}

func (m QueueModel) Title() string {
	if m.kind == QueueDeposits {
		return "Awaiting Deposits"
	}

	return "Awaiting Payments"
}

func (m QueueModel) ShortHelp() string {
	if m.state == queueStateReject {
		return "Enter: reject | Esc: cancel"
	}

	return "Esc: back | c: confirm | r: reject | l: reload"
}

func (m QueueModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

type queueLoadedMsg struct {
	entries []entry
	err     error
}

type queueActionMsg struct {
	verb string
	err  error
}

func (m QueueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case queueLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.entries = msg.entries
		m.refreshTable()

		return m, nil

	case queueActionMsg:
		m.state = queueStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Could not %s: %v", msg.verb, msg.err)
		} else {
			m.status = strings.ToUpper(msg.verb[:1]) + msg.verb[1:] + "ed."
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case spinner.TickMsg:
		if !m.loading && m.state != queueStateBusy {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	switch m.state {
	case queueStateBrowse:
		return m.updateBrowse(msg)
	case queueStateReject:
		return m.updateReject(msg)
	}

	return m, nil
}

func (m QueueModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "l":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		case "c":
			e, ok := m.selected()
			if !ok {
				return m, nil
			}

			m.state = queueStateBusy

			return m, tea.Batch(m.spinner.Tick, m.confirmCmd(e.ID))
		case "r":
			return m.enterRejectMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m QueueModel) enterRejectMode() (tea.Model, tea.Cmd) {
	if _, ok := m.selected(); !ok {
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("reason").
				Title("Rejection reason").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a reason is required")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = queueStateReject
	m.table.Blur()

	return m, m.form.Init()
}

func (m QueueModel) updateReject(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = queueStateBrowse
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

	e, ok := m.selected()
	if !ok {
		m.state = queueStateBrowse
		return m, nil
	}

	m.state = queueStateBusy

	return m, tea.Batch(m.spinner.Tick, m.rejectCmd(e.ID, m.form.GetString("reason")))
}

func (m QueueModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Loading " + strings.ToLower(m.Title()) + "...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	header := fmt.Sprintf("%s (%d)", m.Title(), len(m.entries))
	if m.state == queueStateBusy {
		header += " " + m.spinner.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	if m.state == queueStateReject && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Reject\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m QueueModel) selected() (entry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return entry{}, false
	}

	return m.entries[idx], true
}

func (m *QueueModel) refreshTable() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			e.Recorded.Format("2006-01-02 15:04"),
			shortID(e.Owner),
			FormatAmount(e.Amount),
			e.Method,
			e.Reference,
		}
	}

	m.table.SetRows(rows)
}

func (m QueueModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		var shopID *uuid.UUID
		if m.actor.Role != auth.RoleOwner {
			shopID = m.actor.ShopID
		}

		if m.kind == QueueDeposits {
			txs, err := m.svc.ListWalletTransactions(ctx, ledger.WalletFilter{
				ShopID:    shopID,
				Direction: new(wallet.DirectionDeposit),
				State:     new(wallet.StateAwaiting),
			})
			if err != nil {
				return queueLoadedMsg{err: err}
			}

			out := make([]entry, len(txs))
			for i, t := range txs {
				out[i] = entry{ID: t.ID, Recorded: t.CreatedAt, Owner: t.CustomerID, Amount: t.Amount, Method: t.Method, Reference: t.Reference}
			}

			return queueLoadedMsg{entries: out}
		}

		pays, err := m.svc.ListPayments(ctx, ledger.PaymentFilter{ShopID: shopID, State: new(payment.StateAwaiting)})
		if err != nil {
			return queueLoadedMsg{err: err}
		}

		out := make([]entry, len(pays))
		for i, p := range pays {
			out[i] = entry{ID: p.ID, Recorded: p.CreatedAt, Owner: p.PurchaseID, Amount: p.Amount, Method: string(p.Method), Reference: p.Reference}
		}

		return queueLoadedMsg{entries: out}
	}
}

func (m QueueModel) confirmCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		var err error
		if m.kind == QueueDeposits {
			_, err = m.svc.ConfirmDeposit(ctx, m.actor, id)
		} else {
			_, err = m.svc.ConfirmPayment(ctx, m.actor, id)
		}

		return queueActionMsg{verb: "confirm", err: err}
	}
}

func (m QueueModel) rejectCmd(id uuid.UUID, reason string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		var err error
		if m.kind == QueueDeposits {
			_, err = m.svc.RejectDeposit(ctx, m.actor, id, reason)
		} else {
			_, err = m.svc.RejectPayment(ctx, m.actor, id, reason)
		}

		return queueActionMsg{verb: "reject", err: err}
	}
}
