package view

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
	"github.com/MrJamesThe3rd/kakeibo/internal/report"
)

type reportMode int

const (
	reportModeTime reportMode = iota
	reportModeCategory
	reportModeTags
	reportModeTagTimeline
)

var granularities = []report.Granularity{
	report.GranularityDay,
	report.GranularityWeek,
	report.GranularityMonth,
	report.GranularityYear,
}

// tag-report kind cycle: both kinds, expenses only, income only
var tagKinds = []ledger.Kind{"", ledger.KindExpense, ledger.KindIncome}

const barWidth = 36

var (
	incomeBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	neutralBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// ReportsModel renders the time, category and tag aggregations as text bar
// charts over the current ledger snapshot.
type ReportsModel struct {
	CommonModel
	svc *ledger.Service

	mode           reportMode
	granularityIdx int
	categoryKind   ledger.Kind
	tagKindIdx     int
	minCount       int

	snap    ledger.Ledger
	tags    []report.TagTotal
	tagIdx  int
	tag     string // selected tag in timeline mode
	loading bool
	err     error
}

func NewReportsModel(svc *ledger.Service) ReportsModel {
	return ReportsModel{
		svc:            svc,
		granularityIdx: 2, // month
		categoryKind:   ledger.KindExpense,
		minCount:       1,
		loading:        true,
	}
}

func (m ReportsModel) Title() string { return "Reports" }

func (m ReportsModel) ShortHelp() string {
	switch m.mode {
	case reportModeTime:
		return "Esc: back | m: mode | g: granularity | r: refresh"
	case reportModeCategory:
		return "Esc: back | m: mode | k: kind | r: refresh"
	case reportModeTags:
		return "Esc: back | m: mode | k: kind | +/-: min count | up/down+Enter: timeline"
	default:
		return "Esc: back | g: granularity"
	}
}

func (m ReportsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadMsg:
		m.loading = false
		m.err = msg.err
		m.snap = msg.ledger
		m.recomputeTags()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.mode == reportModeTagTimeline {
				m.mode = reportModeTags
				return m, nil
			}

			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "m":
			if m.mode != reportModeTagTimeline {
				m.mode = (m.mode + 1) % 3
				m.tagIdx = 0
				m.recomputeTags()
			}

			return m, nil
		case "g":
			if m.mode == reportModeTime || m.mode == reportModeTagTimeline {
				m.granularityIdx = (m.granularityIdx + 1) % len(granularities)
			}

			return m, nil
		case "k":
			switch m.mode {
			case reportModeCategory:
				if m.categoryKind == ledger.KindExpense {
					m.categoryKind = ledger.KindIncome
				} else {
					m.categoryKind = ledger.KindExpense
				}
			case reportModeTags:
				m.tagKindIdx = (m.tagKindIdx + 1) % len(tagKinds)
				m.tagIdx = 0
				m.recomputeTags()
			}

			return m, nil
		case "+":
			if m.mode == reportModeTags {
				m.minCount++
				m.tagIdx = 0
				m.recomputeTags()
			}

			return m, nil
		case "-":
			if m.mode == reportModeTags && m.minCount > 1 {
				m.minCount--
				m.tagIdx = 0
				m.recomputeTags()
			}

			return m, nil
		case "up":
			if m.mode == reportModeTags && m.tagIdx > 0 {
				m.tagIdx--
			}

			return m, nil
		case "down":
			if m.mode == reportModeTags && m.tagIdx < len(m.tags)-1 {
				m.tagIdx++
			}

			return m, nil
		case "enter":
			if m.mode == reportModeTags && m.tagIdx < len(m.tags) {
				m.tag = m.tags[m.tagIdx].Tag
				m.mode = reportModeTagTimeline
			}

			return m, nil
		}
	}

	return m, nil
}

func (m ReportsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var body string

	switch m.mode {
	case reportModeTime:
		body = m.viewTime()
	case reportModeCategory:
		body = m.viewCategory()
	case reportModeTags:
		body = m.viewTags()
	case reportModeTagTimeline:
		body = m.viewTagTimeline()
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (m ReportsModel) granularity() report.Granularity {
	return granularities[m.granularityIdx]
}

func (m ReportsModel) viewTime() string {
	buckets, err := report.BucketByTime(m.snap, m.granularity())
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	if len(buckets) == 0 {
		return "No records yet."
	}

	periods := make([]string, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}

	sort.Strings(periods)

	var max int64

	for _, flow := range buckets {
		if flow.Income > max {
			max = flow.Income
		}

		if flow.Expense > max {
			max = flow.Expense
		}
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Income / Expense by %s\n\n", m.granularity()))

	for _, period := range periods {
		flow := buckets[period]
		sb.WriteString(fmt.Sprintf("%-10s +%10s %s\n", period, FormatAmount(flow.Income),
			incomeBarStyle.Render(bar(flow.Income, max))))
		sb.WriteString(fmt.Sprintf("%-10s -%10s %s\n", "", FormatAmount(flow.Expense),
			expenseBarStyle.Render(bar(flow.Expense, max))))
		sb.WriteString(fmt.Sprintf("%-10s =%10s\n", "", FormatAmount(flow.Net)))
	}

	return sb.String()
}

func (m ReportsModel) viewCategory() string {
	totals, err := report.BucketByCategory(m.snap, m.categoryKind)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	if len(totals) == 0 {
		return fmt.Sprintf("No %s records with a category.", m.categoryKind)
	}

	max := totals[0].Sum

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Top categories (%s)\n\n", m.categoryKind))

	for _, c := range totals {
		sb.WriteString(fmt.Sprintf("%-14s %10s %s\n", c.Category, FormatAmount(c.Sum),
			neutralBarStyle.Render(bar(c.Sum, max))))
	}

	return sb.String()
}

// recomputeTags refreshes the selectable tag rows after anything affecting
// the tag aggregation changes.
func (m *ReportsModel) recomputeTags() {
	totals, err := report.BucketByTag(m.snap, tagKinds[m.tagKindIdx], m.minCount)
	if err != nil {
		totals = nil
	}

	m.tags = totals
}

func (m ReportsModel) viewTags() string {
	kindLabel := "all"
	if k := tagKinds[m.tagKindIdx]; k != "" {
		kindLabel = string(k)
	}

	if len(m.tags) == 0 {
		return fmt.Sprintf("No tags with at least %d uses (kind: %s).", m.minCount, kindLabel)
	}

	max := m.tags[0].Sum

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Tags (kind: %s, min count: %d)\n\n", kindLabel, m.minCount))

	for i, t := range m.tags {
		cursor := "  "
		if i == m.tagIdx {
			cursor = "> "
		}

		sb.WriteString(fmt.Sprintf("%s%-12s %10s x%-3d %s\n", cursor, t.Tag, FormatAmount(t.Sum), t.Count,
			neutralBarStyle.Render(bar(t.Sum, max))))
	}

	return sb.String()
}

func (m ReportsModel) viewTagTimeline() string {
	timeline, err := report.TagTimeline(m.snap, m.tag, m.granularity())
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	if len(timeline) == 0 {
		return fmt.Sprintf("No records tagged %q.", m.tag)
	}

	periods := make([]string, 0, len(timeline))

	var max int64

	for period, sum := range timeline {
		periods = append(periods, period)

		if sum > max {
			max = sum
		}
	}

	sort.Strings(periods)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Tag %q by %s\n\n", m.tag, m.granularity()))

	for _, period := range periods {
		sb.WriteString(fmt.Sprintf("%-10s %10s %s\n", period, FormatAmount(timeline[period]),
			neutralBarStyle.Render(bar(timeline[period], max))))
	}

	return sb.String()
}

// bar scales value against max into a fixed-width block bar.
func bar(value, max int64) string {
	if max <= 0 || value <= 0 {
		return ""
	}

	n := int(value * barWidth / max)
	if n == 0 {
		n = 1
	}

	return strings.Repeat("█", n)
}

type reportsLoadMsg struct {
	ledger ledger.Ledger
	err    error
}

func (m ReportsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := FileCtx()
		defer cancel()

		l, err := m.svc.Load(ctx)

		return reportsLoadMsg{ledger: l, err: err}
	}
}
