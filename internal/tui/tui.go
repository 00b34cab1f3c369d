// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tui implements the interactive terminal explorer.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ianlewis/go-wordhunter"
	"github.com/ianlewis/go-wordhunter/internal/i18n"
	"github.com/ianlewis/go-wordhunter/wordlist"
)

const (
	maxLetters   = 30
	searchLimit  = 200
	tableHeight  = 12
	defaultWidth = 80
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	wordStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	detailStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1)
)

type focus int

const (
	focusInput focus = iota
	focusTable
)

// Options configure the explorer.
type Options struct {
	// Translate enables translation of looked up words.
	Translate bool

	// Datamuse adds Datamuse suggestions to searches.
	Datamuse bool

	// Language selects the interface language.
	Language language.Tag

	Bundle *i18n.Bundle
}

type searchMsg struct {
	res *wordhunter.SearchResult
	err error
}

type defineMsg struct {
	word string
	ex   *wordhunter.Exploration
}

// Model is the explorer state.
type Model struct {
	ctx     context.Context
	hunter  *wordhunter.Hunter
	opts    Options
	printer *message.Printer

	input   textinput.Model
	table   table.Model
	focus   focus
	letters int
	order   wordlist.Order

	result   *wordhunter.SearchResult
	detail   *wordhunter.Result
	warnings []string
	loading  string
	err      error
	width    int
}

// New returns the initial explorer model.
func New(ctx context.Context, h *wordhunter.Hunter, opts *Options) Model {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Bundle == nil {
		o.Bundle = i18n.Default()
	}
	if o.Language == language.Und {
		o.Language = o.Bundle.Tags()[0]
	}
	p := o.Bundle.Printer(o.Language)

	in := textinput.New()
	in.Prompt = p.Sprintf("search.suffix") + ": "
	in.Placeholder = "ing"
	in.CharLimit = 32
	in.Focus()

	t := table.New(
		table.WithColumns(columns(p, defaultWidth)),
		table.WithHeight(tableHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return Model{
		ctx:     ctx,
		hunter:  h,
		opts:    o,
		printer: p,
		input:   in,
		table:   t,
		letters: wordlist.AnyLength,
		width:   defaultWidth,
	}
}

func columns(p *message.Printer, width int) []table.Column {
	w := max(width-16, 30)
	return []table.Column{
		{Title: p.Sprintf("results.word"), Width: w / 2},
		{Title: p.Sprintf("search.letters"), Width: 10},
	}
}

// Init implements [tea.Model].
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(m.printer, msg.Width))
		m.table.SetHeight(max(msg.Height-14, 3))
		return m, nil

	case searchMsg:
		m.loading = ""
		m.err = msg.err
		m.result = msg.res
		m.detail = nil
		m.warnings = nil
		var rows []table.Row
		if msg.res != nil {
			m.warnings = msg.res.Warnings
			for _, match := range msg.res.Matches {
				rows = append(rows, table.Row{match.Word, strconv.Itoa(match.Letters)})
			}
		}
		m.table.SetRows(rows)
		m.table.SetCursor(0)
		return m, nil

	case defineMsg:
		m.loading = ""
		m.warnings = msg.ex.Warnings
		if len(msg.ex.Results) > 0 {
			r := msg.ex.Results[0]
			m.detail = &r
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			return m.toggleFocus(), nil
		case "+":
			if m.focus == focusTable {
				m.letters = min(m.letters+1, maxLetters)
				return m, m.search()
			}
		case "-":
			if m.focus == focusTable {
				m.letters = max(m.letters-1, wordlist.AnyLength)
				return m, m.search()
			}
		case "ctrl+s":
			m.order = (m.order + 1) % (wordlist.Frequency + 1)
			return m, m.search()
		case "enter":
			if m.focus == focusInput {
				return m, m.search()
			}
			return m, m.define()
		}
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput {
		m.focus = focusTable
		m.input.Blur()
		m.table.Focus()
		return m
	}
	m.focus = focusInput
	m.table.Blur()
	m.input.Focus()
	return m
}

// search returns a command running the current search. It returns nil when
// there is nothing to search for.
func (m Model) search() tea.Cmd {
	suffix := strings.TrimSpace(m.input.Value())
	if suffix == "" {
		return nil
	}
	q := wordhunter.Query{
		Suffix:   suffix,
		Letters:  m.letters,
		Sort:     m.order,
		Limit:    searchLimit,
		Datamuse: m.opts.Datamuse,
	}
	ctx, h := m.ctx, m.hunter
	return func() tea.Msg {
		res, err := h.Search(ctx, q)
		return searchMsg{res: res, err: err}
	}
}

// define returns a command looking up the selected word.
func (m *Model) define() tea.Cmd {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return nil
	}
	word := row[0]
	m.loading = word
	ctx, h, tr := m.ctx, m.hunter, m.opts.Translate
	return func() tea.Msg {
		ex := h.Explore(ctx, []string{word}, wordhunter.ExploreOptions{Translate: tr})
		return defineMsg{word: word, ex: ex}
	}
}

// View implements [tea.Model].
func (m Model) View() string {
	var b strings.Builder
	p := m.printer

	b.WriteString(titleStyle.Render(p.Sprintf("app.title")))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	letters := p.Sprintf("search.any")
	if m.letters >= 0 {
		letters = strconv.Itoa(m.letters)
	}
	fmt.Fprintf(&b, "%s %s   %s %s\n\n",
		labelStyle.Render(p.Sprintf("search.letters")+":"), letters,
		labelStyle.Render(p.Sprintf("search.sort")+":"), p.Sprintf("sort."+m.order.String()),
	)

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.result != nil && len(m.result.Matches) == 0:
		b.WriteString(p.Sprintf("results.none"))
		b.WriteString("\n")
	case m.result != nil:
		b.WriteString(p.Sprintf("results.count", m.result.Total))
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.loading != "" {
		b.WriteString(labelStyle.Render(p.Sprintf("tui.loading", m.loading)))
		b.WriteString("\n")
	} else if m.detail != nil {
		b.WriteString(m.detailView())
		b.WriteString("\n")
	}
	for _, w := range m.warnings {
		b.WriteString(warningStyle.Render(w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(p.Sprintf("tui.help")))
	b.WriteString("\n")
	return b.String()
}

func (m Model) detailView() string {
	p, r := m.printer, m.detail
	lines := []string{
		wordStyle.Render(r.Word),
		labelStyle.Render(p.Sprintf("results.pos")+": ") + r.PartOfSpeech,
		labelStyle.Render(p.Sprintf("results.definition")+": ") + r.Definition,
		labelStyle.Render(p.Sprintf("results.meaning")+": ") + r.Meaning,
	}
	if r.Entry != nil && len(r.Entry.Synonyms) > 0 {
		lines = append(lines, labelStyle.Render(p.Sprintf("results.synonyms")+": ")+strings.Join(r.Entry.Synonyms, ", "))
	}
	return detailStyle.Width(max(m.width-4, 20)).Render(strings.Join(lines, "\n"))
}

// Run runs the explorer until the user quits or ctx is cancelled.
func Run(ctx context.Context, h *wordhunter.Hunter, opts *Options) error {
	p := tea.NewProgram(New(ctx, h, opts), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}
	return nil
}
