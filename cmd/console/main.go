package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/layby/cmd/console/internal/view"
	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/config"
	"github.com/MrJamesThe3rd/layby/internal/database"
	"github.com/MrJamesThe3rd/layby/internal/events"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/layby/internal/ledger/store"
)

type model struct {
	svc   view.Ledger
	actor auth.Actor

	currentView View

	paymentsView  view.QueueModel
	depositsView  view.QueueModel
	purchasesView view.PurchasesModel
}

type View int

const (
	ViewMenu      View = 0
	ViewPayments  View = 1
	ViewDeposits  View = 2
	ViewPurchases View = 3
)

func actorFromConfig(cfg *config.Config) (auth.Actor, error) {
	userID, err := uuid.Parse(cfg.Console.UserID)
	if err != nil {
		return auth.Actor{}, fmt.Errorf("CONSOLE_USER_ID: %w", err)
	}

	a := auth.Actor{UserID: userID, Role: auth.Role(cfg.Console.Role)}
	if !a.Role.Valid() {
		return auth.Actor{}, fmt.Errorf("CONSOLE_ROLE: unknown role %q", cfg.Console.Role)
	}

	if cfg.Console.ShopID != "" {
		shopID, err := uuid.Parse(cfg.Console.ShopID)
		if err != nil {
			return auth.Actor{}, fmt.Errorf("CONSOLE_SHOP_ID: %w", err)
		}

		a.ShopID = &shopID
	}

	return a, nil
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		svc   *ledger.Service
		actor auth.Actor
	)

	if cfg.Console.Demo {
		svc, actor, err = seedDemo()
		if err != nil {
			slog.Error("failed to seed demo ledger", "error", err)
			os.Exit(1)
		}
	} else {
		actor, err = actorFromConfig(cfg)
		if err != nil {
			slog.Error("invalid console identity", "error", err)
			os.Exit(1)
		}

		db, err := database.New(cfg.ConnectionString(), database.Options{MaxOpenConns: 2})
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		svc = ledger.NewService(ledgerStore.New(db),
			ledger.WithMaxAttempts(cfg.Ledger.MaxAttempts),
			ledger.WithPublisher(events.Discard{}),
		)
	}

	return model{
		svc:         svc,
		actor:       actor,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPayments
				m.paymentsView = view.NewQueueModel(m.svc, m.actor, view.QueuePayments)

				return m, m.paymentsView.Init()
			case "2":
				m.currentView = ViewDeposits
				m.depositsView = view.NewQueueModel(m.svc, m.actor, view.QueueDeposits)

				return m, m.depositsView.Init()
			case "3":
				m.currentView = ViewPurchases
				m.purchasesView = view.NewPurchasesModel(m.svc, m.actor)

				return m, m.purchasesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.QueueModel)
	case ViewDeposits:
		var newModel tea.Model
		newModel, cmd = m.depositsView.Update(msg)
		m.depositsView = newModel.(view.QueueModel)
	case ViewPurchases:
		var newModel tea.Model
		newModel, cmd = m.purchasesView.Update(msg)
		m.purchasesView = newModel.(view.PurchasesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Layby Console (%s)\n\n", m.actor.Role) +
				"1. Awaiting Payments\n" +
				"2. Awaiting Deposits\n" +
				"3. Purchases\n\n" +
				"q. Quit",
		)
	case ViewPayments:
		return m.paymentsView.View()
	case ViewDeposits:
		return m.depositsView.View()
	case ViewPurchases:
		return m.purchasesView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run console", "error", err)
		os.Exit(1)
	}
}
