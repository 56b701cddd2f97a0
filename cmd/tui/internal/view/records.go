package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/ledger/store"
	"github.com/MrJamesThe3rd/kakeibo/internal/report"
)

type recordsState int

const (
	recordsStateBrowse recordsState = iota
	recordsStateFilter
	recordsStateEdit
	recordsStateConfirmDelete
)

// RecordsModel lists the ledger with filtering, editing and deletion.
type RecordsModel struct {
	CommonModel
	svc      *ledger.Service
	accounts []string

	state recordsState
	table table.Model
	snap  ledger.Ledger
	txs   []ledger.Transaction
	form  *huh.Form

	accountIdx int
	ascending  bool
	filter     report.Filter

	loading bool
	err     error
	status  string

	// Form bindings
	formText     string
	formFrom     string
	formTo       string
	formDate     string
	formAccount  string
	formAmount   string
	formSource   string
	formCategory string
	formTags     string
	formNote     string
	formConfirm  bool
}

func NewRecordsModel(svc *ledger.Service, accounts []string) RecordsModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Date", Width: 12},
		{Title: "Kind", Width: 8},
		{Title: "Account", Width: 10},
		{Title: "Amount", Width: 10},
		{Title: "Balance", Width: 11},
		{Title: "Details", Width: 24},
		{Title: "Note", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
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

	return RecordsModel{
		svc:       svc,
		accounts:  accounts,
		table:     t,
		ascending: true,
		loading:   true,
	}
}

func (m RecordsModel) Title() string { return "Records" }

func (m RecordsModel) ShortHelp() string {
	switch m.state {
	case recordsStateBrowse:
		return "Esc: back | e: edit | x: delete | /: search | a: account | o: order | r: refresh"
	default:
		return "Navigate form | Esc: cancel"
	}
}

func (m RecordsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.snap = msg.ledger
		m.refreshTable()

		return m, nil

	case recordsSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = recordsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case recordsStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m RecordsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "o":
			m.ascending = !m.ascending
			m.refreshTable()

			return m, nil
		case "a":
			m.accountIdx = (m.accountIdx + 1) % (len(m.accounts) + 1)
			m.applyAccountFilter()
			m.refreshTable()

			return m, nil
		case "/":
			return m.enterFilterMode()
		case "e":
			return m.enterEditMode()
		case "x":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *RecordsModel) applyAccountFilter() {
	if m.accountIdx == 0 {
		m.filter.Accounts = nil
		return
	}

	m.filter.Accounts = []string{m.accounts[m.accountIdx-1]}
}

func (m RecordsModel) enterFilterMode() (tea.Model, tea.Cmd) {
	m.formText = m.filter.Text
	m.formFrom = ""
	m.formTo = ""

	if m.filter.From != nil {
		m.formFrom = FormatDate(*m.filter.From)
	}

	if m.filter.To != nil {
		m.formTo = FormatDate(*m.filter.To)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("text").
				Title("Search").
				Placeholder("matches source, category, tags, note, account").
				Value(&m.formText),

			huh.NewInput().
				Key("from").
				Title("From (YYYY-MM-DD, empty for open)").
				Value(&m.formFrom).
				Validate(validateOptionalDate),

			huh.NewInput().
				Key("to").
				Title("To (YYYY-MM-DD, empty for open)").
				Value(&m.formTo).
				Validate(validateOptionalDate),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = recordsStateFilter
	m.table.Blur()

	return m, m.form.Init()
}

func (m RecordsModel) enterEditMode() (tea.Model, tea.Cmd) {
	tx, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.formDate = FormatDate(tx.Date)
	m.formAccount = tx.Account
	m.formAmount = FormatAmount(tx.Amount)
	m.formSource = tx.Source
	m.formCategory = tx.Category
	m.formTags = strings.Join(tx.Tags, ",")
	m.formNote = tx.Note

	accountOpts := make([]huh.Option[string], 0, len(m.accounts)+1)

	seen := false

	for _, a := range m.accounts {
		if a == tx.Account {
			seen = true
		}

		accountOpts = append(accountOpts, huh.NewOption(a, a))
	}

	// A stored account outside the configured set stays selectable.
	if !seen && tx.Account != "" {
		accountOpts = append(accountOpts, huh.NewOption(tx.Account, tx.Account))
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("date").
			Title("Date").
			Value(&m.formDate).
			Validate(func(s string) error {
				_, err := ParseDate(s)
				return err
			}),

		huh.NewSelect[string]().
			Key("account").
			Title("Account").
			Options(accountOpts...).
			Value(&m.formAccount),

		huh.NewInput().
			Key("amount").
			Title("Amount").
			Value(&m.formAmount).
			Validate(validateAmount),
	}

	if tx.Kind == ledger.KindIncome {
		fields = append(fields,
			huh.NewInput().Key("source").Title("Source").Value(&m.formSource),
		)
	} else {
		fields = append(fields,
			huh.NewInput().Key("category").Title("Category").Value(&m.formCategory),
			huh.NewInput().Key("tags").Title("Tags (comma separated)").Value(&m.formTags),
		)
	}

	fields = append(fields,
		huh.NewInput().Key("note").Title("Note").Value(&m.formNote),
	)

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)
	m.state = recordsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m RecordsModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	tx, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete record #%d (%s %s)?", tx.ID, tx.Kind, FormatAmount(tx.Amount))).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = recordsStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m RecordsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = recordsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case recordsStateFilter:
		m.applyTextFilter()
		m.state = recordsStateBrowse
		m.form = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil
	case recordsStateEdit:
		return m, m.saveEditCmd()
	case recordsStateConfirmDelete:
		if !m.formConfirm {
			m.state = recordsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd()
	}

	return m, nil
}

func (m *RecordsModel) applyTextFilter() {
	m.filter.Text = m.formText
	m.filter.From = nil
	m.filter.To = nil

	if t, err := ParseDate(m.formFrom); err == nil {
		m.filter.From = &t
	}

	if t, err := ParseDate(m.formTo); err == nil {
		m.filter.To = &t
	}
}

func (m RecordsModel) selected() (ledger.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return ledger.Transaction{}, false
	}

	return m.txs[idx], true
}

func (m *RecordsModel) refreshTable() {
	m.txs = report.SortByID(report.Apply(m.snap, m.filter), m.ascending)

	rows := make([]table.Row, 0, len(m.txs))

	for _, tx := range m.txs {
		details := tx.Source
		if tx.Kind == ledger.KindExpense {
			details = tx.Category
			if len(tx.Tags) > 0 {
				details += " [" + strings.Join(tx.Tags, ",") + "]"
			}
		}

		rows = append(rows, table.Row{
			fmt.Sprintf("%d", tx.ID),
			FormatDate(tx.Date),
			string(tx.Kind),
			tx.Account,
			FormatAmount(tx.Amount),
			FormatAmount(tx.Balance),
			details,
			tx.Note,
		})
	}

	m.table.SetRows(rows)
}

func (m RecordsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	account := "All"
	if m.accountIdx > 0 {
		account = m.accounts[m.accountIdx-1]
	}

	order := "asc"
	if !m.ascending {
		order = "desc"
	}

	search := m.filter.Text
	if search == "" {
		search = "-"
	}

	header := fmt.Sprintf(
		"Filter: [a] Account: %s | [/] Search: %s | [o] Order: %s",
		activeStyle(account), activeStyle(search), activeStyle(order),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != recordsStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// Messages

type recordsLoadMsg struct {
	ledger ledger.Ledger
	err    error
}

func (m RecordsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := FileCtx()
		defer cancel()

		l, err := m.svc.Load(ctx)

		return recordsLoadMsg{ledger: l, err: err}
	}
}

type recordsSaveMsg struct {
	status string
	err    error
}

func (m RecordsModel) saveEditCmd() tea.Cmd {
	tx, ok := m.selected()
	if !ok {
		return nil
	}

	date, err := ParseDate(m.formDate)
	if err != nil {
		return func() tea.Msg { return recordsSaveMsg{err: err} }
	}

	amount, err := ParseAmount(m.formAmount)
	if err != nil {
		return func() tea.Msg { return recordsSaveMsg{err: err} }
	}

	account := m.formAccount

	params := ledger.UpdateParams{
		Date:    &date,
		Account: &account,
		Amount:  &amount,
	}

	note := strings.TrimSpace(m.formNote)
	params.Note = &note

	if tx.Kind == ledger.KindIncome {
		source := strings.TrimSpace(m.formSource)
		params.Source = &source
	} else {
		category := strings.TrimSpace(m.formCategory)
		params.Category = &category

		// An emptied tags field clears the tags rather than keeping them.
		params.Tags = store.SplitTags(m.formTags)
		if params.Tags == nil {
			params.Tags = []string{}
		}
	}

	return func() tea.Msg {
		ctx, cancel := FileCtx()
		defer cancel()

		l, err := m.svc.Load(ctx)
		if err != nil {
			return recordsSaveMsg{err: err}
		}

		if _, err := m.svc.Update(ctx, l, tx.ID, params); err != nil {
			return recordsSaveMsg{err: err}
		}

		return recordsSaveMsg{status: fmt.Sprintf("Updated record #%d", tx.ID)}
	}
}

func (m RecordsModel) deleteCmd() tea.Cmd {
	tx, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := FileCtx()
		defer cancel()

		l, err := m.svc.Load(ctx)
		if err != nil {
			return recordsSaveMsg{err: err}
		}

		if _, err := m.svc.Delete(ctx, l, tx.ID); err != nil {
			return recordsSaveMsg{err: err}
		}

		return recordsSaveMsg{status: fmt.Sprintf("Deleted record #%d", tx.ID)}
	}
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	_, err := ParseDate(s)

	return err
}
