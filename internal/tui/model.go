package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"catalog/internal/domain"
	"catalog/internal/search"
	"catalog/internal/tokenizer"
)

// SearchPort is the TUI-facing subset of the report service.
type SearchPort interface {
	Hits(query string, limit int) ([]search.Hit, error)
	Record(ordinal int) domain.Record
	Tokenizer() *tokenizer.Tokenizer
}

// Model is the Bubble Tea model for the catalog search browser.
type Model struct {
	service   SearchPort
	limit     int
	input     textinput.Model
	viewport  viewport.Model
	results   []search.Hit
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a browser over service. summary is shown under the title.
func New(service SearchPort, summary string, limit int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type keywords and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, limit: limit, input: ti, viewport: vp, summary: summary, status: "Loaded. Type to search."}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

type keyMap struct {
	Quit     key.Binding
	Search   key.Binding
	Next     key.Binding
	Prev     key.Binding
	PageDown key.Binding
	PageUp   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d", "esc")),
	Search:   key.NewBinding(key.WithKeys("enter")),
	Next:     key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Prev:     key.NewBinding(key.WithKeys("up", "ctrl+p")),
	PageDown: key.NewBinding(key.WithKeys("pgdown")),
	PageUp:   key.NewBinding(key.WithKeys("pgup")),
}

// Update handles key and window events. Keys not bound here go to the
// query input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize gives the detail pane whatever the fixed rows leave over.
func (m Model) resize(width, height int) Model {
	m.ready = true
	fixed := lipgloss.Height(m.chrome()) + resultBoxStyle.GetVerticalFrameSize()
	m.viewport.Width = max(20, width-resultBoxStyle.GetHorizontalFrameSize())
	m.viewport.Height = max(3, height-fixed)
	m.viewport.SetContent(m.renderCurrentResult())
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, keys.Search):
		q := strings.TrimSpace(m.input.Value())
		if q == "" {
			return m, nil, true
		}
		return m.runQuery(q), nil, true
	case key.Matches(msg, keys.Next):
		return m.move(1), nil, len(m.results) > 0
	case key.Matches(msg, keys.Prev):
		return m.move(-1), nil, len(m.results) > 0
	case key.Matches(msg, keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil, true
	case key.Matches(msg, keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil, true
	}
	return m, nil, false
}

// move steps the selection, wrapping at both ends.
func (m Model) move(delta int) Model {
	if n := len(m.results); n > 0 {
		m.cursor = ((m.cursor+delta)%n + n) % n
		m.viewport.SetContent(m.renderCurrentResult())
		m.viewport.GotoTop()
	}
	return m
}

func (m Model) runQuery(q string) Model {
	hits, err := m.service.Hits(q, m.limit)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
	} else {
		m.status = fmt.Sprintf("%d result(s) for %q", len(hits), q)
		m.results = hits
		m.cursor = 0
		m.lastQuery = q
	}
	m.viewport.SetContent(m.renderCurrentResult())
	return m
}

// View renders the layout: title, summary, detail pane, query box, status.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Catalog Search"),
		summaryStyle.Render(m.summary),
		resultBoxStyle.Render(m.viewport.View()),
		queryBoxStyle.Render(m.input.View()),
		statusStyle.Render(m.status),
	)
}

// chrome renders every row of the layout except the detail pane.
func (m Model) chrome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Catalog Search"),
		summaryStyle.Render(m.summary),
		queryBoxStyle.Render(m.input.View()),
		statusStyle.Render(m.status),
	)
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	h := m.results[m.cursor]
	rec := m.service.Record(h.Ordinal)
	tok := m.service.Tokenizer()
	terms := make(map[string]struct{})
	for _, t := range tok.Distinct(m.lastQuery) {
		terms[t] = struct{}{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Result %d/%d  id=%d  score=%d\n\n", m.cursor+1, len(m.results), h.ID, h.Score)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("category:   "), domain.FromText(rec.Category))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("subcategory:"), domain.FromText(rec.Subcategory))
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("name:       "), highlightMatches(rec.ProductName.OrEmpty(), terms, tok))
	b.WriteString(highlightMatches(rec.Description.OrEmpty(), terms, tok))
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// highlightMatches renders every word of text whose token is among terms.
func highlightMatches(text string, terms map[string]struct{}, tok *tokenizer.Tokenizer) string {
	if len(terms) == 0 || strings.TrimSpace(text) == "" {
		return text
	}
	words := strings.Fields(text)
	for i, w := range words {
		for t := range tok.Tokenize(w) {
			if _, ok := terms[t]; ok {
				words[i] = highlightStyle.Render(w)
			}
			break
		}
	}
	return strings.Join(words, " ")
}
