package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/kakeibo/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/kakeibo/internal/config"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger/store"
	"github.com/MrJamesThe3rd/kakeibo/internal/report"
)

type View int

const (
	ViewMenu    View = 0
	ViewAdd     View = 1
	ViewRecords View = 2
	ViewReports View = 3
)

type model struct {
	svc      *ledger.Service
	accounts []string

	currentView View

	addView     view.AddModel
	recordsView view.RecordsModel
	reportsView view.ReportsModel

	balances map[string]int64
	total    int64
	loadErr  error
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	svc := ledger.NewService(store.New(cfg.Ledger.File))

	return model{
		svc:         svc,
		accounts:    cfg.Ledger.Accounts,
		currentView: ViewMenu,
		addView:     view.NewAddModel(svc, cfg.Ledger.Accounts),
		recordsView: view.NewRecordsModel(svc, cfg.Ledger.Accounts),
		reportsView: view.NewReportsModel(svc),
	}
}

func (m model) Init() tea.Cmd {
	return m.loadBalancesCmd()
}

type balancesMsg struct {
	balances map[string]int64
	total    int64
	err      error
}

func (m model) loadBalancesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.FileCtx()
		defer cancel()

		l, err := m.svc.Load(ctx)
		if err != nil {
			return balancesMsg{err: err}
		}

		balances, total := report.CurrentBalances(l)

		return balancesMsg{balances: balances, total: total}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case balancesMsg:
		m.balances = msg.balances
		m.total = msg.total
		m.loadErr = msg.err

		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.svc, m.accounts)

				return m, m.addView.Init()
			case "2":
				m.currentView = ViewRecords
				m.recordsView = view.NewRecordsModel(m.svc, m.accounts)

				return m, m.recordsView.Init()
			case "3":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.svc)

				return m, m.reportsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, m.loadBalancesCmd()
	}

	switch m.currentView {
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewRecords:
		var newModel tea.Model
		newModel, cmd = m.recordsView.Update(msg)
		m.recordsView = newModel.(view.RecordsModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Kakeibo\n\n" +
				m.balancesSummary() + "\n" +
				"1. Add Record\n" +
				"2. Records\n" +
				"3. Reports\n\n" +
				"q. Quit",
		)
	case ViewAdd:
		return m.addView.View()
	case ViewRecords:
		return m.recordsView.View()
	case ViewReports:
		return m.reportsView.View()
	}

	return "Unknown View"
}

func (m model) balancesSummary() string {
	if m.loadErr != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("203")).
			Render(fmt.Sprintf("Ledger error: %v", m.loadErr)) + "\n"
	}

	if len(m.balances) == 0 {
		return "No records yet. Balance: 0.00\n"
	}

	accounts := make([]string, 0, len(m.balances))
	for account := range m.balances {
		accounts = append(accounts, account)
	}

	sort.Strings(accounts)

	var sb strings.Builder

	for _, account := range accounts {
		sb.WriteString(fmt.Sprintf("%-10s %12s\n", account, view.FormatAmount(m.balances[account])))
	}

	sb.WriteString(fmt.Sprintf("%-10s %12s\n", "Total", view.FormatAmount(m.total)))

	return lipgloss.NewStyle().Faint(true).Render(sb.String())
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
