package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/domain"
	"catalog/internal/search"
	"catalog/internal/tokenizer"
)

type fakePort struct {
	hits    []search.Hit
	err     error
	records map[int]domain.Record
	queries []string
}

func (f *fakePort) Hits(q string, limit int) ([]search.Hit, error) {
	f.queries = append(f.queries, q)
	return f.hits, f.err
}

func (f *fakePort) Record(i int) domain.Record      { return f.records[i] }
func (f *fakePort) Tokenizer() *tokenizer.Tokenizer { return tokenizer.New() }

func typeQuery(t *testing.T, m Model, q string) Model {
	t.Helper()
	for _, r := range q {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func TestModel_QueryAndNavigate(t *testing.T) {
	port := &fakePort{
		hits: []search.Hit{{Ordinal: 0, ID: 7, Score: 1}, {Ordinal: 1, ID: 9, Score: 1}},
		records: map[int]domain.Record{
			0: {ID: 7, Category: domain.Some("Bags"), ProductName: domain.Some("Tote"), Description: domain.Some("Leather tote")},
			1: {ID: 9, ProductName: domain.Some("Clutch")},
		},
	}
	m := sized(New(port, "2 records", 10))
	m = typeQuery(t, m, "tote")

	require.Equal(t, []string{"tote"}, port.queries)
	assert.Contains(t, m.status, "2 result(s)")
	assert.Contains(t, m.renderCurrentResult(), "id=7")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	out := m.renderCurrentResult()
	assert.Contains(t, out, "id=9")
	assert.Contains(t, out, domain.MissingLabel)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "Catalog Search")
}

func TestModel_QueryError(t *testing.T) {
	port := &fakePort{err: errors.New("boom")}
	m := typeQuery(t, sized(New(port, "", 10)), "tote")
	assert.Equal(t, "Error: boom", m.status)
	assert.Equal(t, "No results yet.", m.renderCurrentResult())
}

func TestModel_Quit(t *testing.T) {
	_, cmd := New(&fakePort{}, "", 10).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHighlightMatches(t *testing.T) {
	tok := tokenizer.New()
	terms := map[string]struct{}{"leather": {}}
	out := highlightMatches("Soft Leather, tote", terms, tok)
	assert.True(t, strings.HasPrefix(out, "Soft "))
	assert.Contains(t, out, "Leather,")
	assert.True(t, strings.HasSuffix(out, " tote"))

	assert.Equal(t, "plain text", highlightMatches("plain text", nil, tok))
}

func TestModel_WrapsBackwardsWithCtrlP(t *testing.T) {
	port := &fakePort{
		hits:    []search.Hit{{Ordinal: 0, ID: 1}, {Ordinal: 1, ID: 2}, {Ordinal: 2, ID: 3}},
		records: map[int]domain.Record{},
	}
	m := typeQuery(t, sized(New(port, "", 10)), "tote")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = next.(Model)
	assert.Equal(t, 2, m.cursor)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_ArrowsWithoutResultsReachInput(t *testing.T) {
	m := sized(New(&fakePort{}, "", 10))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "No results yet.", m.renderCurrentResult())
}

func TestModel_EmptyQueryIsIgnored(t *testing.T) {
	port := &fakePort{}
	m := sized(New(port, "", 10))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Empty(t, port.queries)
	assert.Equal(t, "Loaded. Type to search.", m.status)
}

func TestModel_ResizeGivesDetailPaneTheRemainder(t *testing.T) {
	m := New(&fakePort{}, "5 records", 10)
	small := sized(m)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 60})
	large := next.(Model)

	assert.Equal(t, 30, large.viewport.Height-small.viewport.Height)
	assert.LessOrEqual(t, lipgloss.Height(large.View()), 60)
}

func TestModel_QuitOnEsc(t *testing.T) {
	_, cmd := New(&fakePort{}, "", 10).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
