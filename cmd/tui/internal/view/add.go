package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger/store"
)

// AddModel collects a new transaction and hands it to the ledger service.
// Income and expense records carry different fields, so the source group and
// the category/tags group hide depending on the selected kind.
type AddModel struct {
	CommonModel
	svc      *ledger.Service
	accounts []string

	form   *huh.Form
	status string

	// Form bindings
	formDate     string
	formKind     string
	formAccount  string
	formAmount   string
	formSource   string
	formCategory string
	formTags     string
	formNote     string
}

func NewAddModel(svc *ledger.Service, accounts []string) AddModel {
	m := AddModel{svc: svc, accounts: accounts}
	m.resetForm()

	return m
}

func (m AddModel) Title() string     { return "Add Record" }
func (m AddModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m *AddModel) resetForm() {
	m.formDate = FormatDate(today())
	m.formKind = string(ledger.KindExpense)
	m.formAccount = ""

	if len(m.accounts) > 0 {
		m.formAccount = m.accounts[0]
	}

	m.formAmount = ""
	m.formSource = ""
	m.formCategory = ""
	m.formTags = ""
	m.formNote = ""

	accountOpts := make([]huh.Option[string], 0, len(m.accounts))
	for _, a := range m.accounts {
		accountOpts = append(accountOpts, huh.NewOption(a, a))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := ParseDate(s)
					return err
				}),

			huh.NewSelect[string]().
				Key("kind").
				Title("Kind").
				Options(
					huh.NewOption("Expense", string(ledger.KindExpense)),
					huh.NewOption("Income", string(ledger.KindIncome)),
				).
				Value(&m.formKind),

			huh.NewSelect[string]().
				Key("account").
				Title("Account").
				Options(accountOpts...).
				Value(&m.formAccount),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(validateAmount),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("source").
				Title("Source").
				Placeholder("Salary").
				Value(&m.formSource),
		).WithHideFunc(func() bool {
			return m.formKind != string(ledger.KindIncome)
		}),

		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("Food").
				Value(&m.formCategory),

			huh.NewInput().
				Key("tags").
				Title("Tags (comma separated)").
				Value(&m.formTags),
		).WithHideFunc(func() bool {
			return m.formKind != string(ledger.KindExpense)
		}),

		huh.NewGroup(
			huh.NewText().
				Key("note").
				Title("Note").
				Lines(2).
				Value(&m.formNote),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Added record #%d", msg.id)
		}

		m.resetForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m AddModel) View() string {
	content := m.form.View()

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type addSavedMsg struct {
	id  int64
	err error
}

func (m AddModel) saveCmd() tea.Cmd {
	date, err := ParseDate(m.formDate)
	if err != nil {
		return func() tea.Msg { return addSavedMsg{err: err} }
	}

	amount, err := ParseAmount(m.formAmount)
	if err != nil {
		return func() tea.Msg { return addSavedMsg{err: err} }
	}

	params := ledger.CreateParams{
		Date:    date,
		Kind:    ledger.Kind(m.formKind),
		Account: m.formAccount,
		Amount:  amount,
		Note:    strings.TrimSpace(m.formNote),
	}

	if params.Kind == ledger.KindIncome {
		params.Source = strings.TrimSpace(m.formSource)
	} else {
		params.Category = strings.TrimSpace(m.formCategory)
		params.Tags = store.SplitTags(m.formTags)
	}

	return func() tea.Msg {
		ctx, cancel := FileCtx()
		defer cancel()

		l, err := m.svc.Load(ctx)
		if err != nil {
			return addSavedMsg{err: err}
		}

		id := l.NextID()

		if _, err := m.svc.Add(ctx, l, params); err != nil {
			return addSavedMsg{err: err}
		}

		return addSavedMsg{id: id}
	}
}

func validateAmount(s string) error {
	cents, err := ParseAmount(s)
	if err != nil {
		return err
	}

	if cents <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	return nil
}
