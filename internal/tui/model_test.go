package tui

import (
	"strings"
	"testing"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() Model {
	return New(catalog.NewBrowser(&domain.Dataset{
		Users: []domain.User{
			{ID: 100, Name: "Max", Sex: domain.SexMale},
			{ID: 200, Name: "Anna", Sex: domain.SexFemale},
		},
		Categories: []domain.Category{
			{ID: 10, Title: "Fruits", Icon: "F", OwnerID: 100},
			{ID: 20, Title: "Drinks", Icon: "D", OwnerID: 200},
		},
		Products: []domain.Product{
			{ID: 1, Name: "Apple", CategoryID: 10},
			{ID: 2, Name: "Milk", CategoryID: 20},
			{ID: 3, Name: "Pineapple", CategoryID: 10},
		},
	}))
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(s string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		keys = append(keys, runes(string(r)))
	}
	return keys
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel()
	out := m.View()

	assert.Contains(t, out, "Product Categories")
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "F - Fruits")
	assert.NotContains(t, out, catalog.NoResultsMessage)
}

func TestModel_LiveSearch(t *testing.T) {
	m := newTestModel()

	m = press(t, m, runes("/"))
	m = press(t, m, typeText("APP")...)
	assert.Equal(t, "APP", m.State().Query)
	out := m.View()
	assert.Contains(t, out, "Pineapple")
	assert.NotContains(t, out, "Milk")

	// "q" while searching is text, not quit.
	m = press(t, m, typeText("q")...)
	assert.Equal(t, "APPq", m.State().Query)
	assert.Contains(t, m.View(), catalog.NoResultsMessage)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "APP", m.State().Query)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("c"))
	assert.Equal(t, "", m.State().Query)
	assert.Contains(t, m.View(), "Milk")
}

func TestModel_OwnerSelection(t *testing.T) {
	m := newTestModel()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, int64(100), m.State().OwnerID)
	first := m.View()
	assert.NotContains(t, first, "Milk")

	// Selecting the same owner again is a no-op.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, int64(100), m.State().OwnerID)
	assert.Equal(t, first, m.View())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, int64(200), m.State().OwnerID)
	assert.Contains(t, m.View(), "Milk")
	assert.NotContains(t, m.View(), "Apple")

	// Cursor stops at the last tab.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, int64(200), m.State().OwnerID)

	// The "All" tab resets the owner.
	m = press(t, m, runes("h"), runes("h"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.State().HasOwner())
}

func TestModel_ResetAll(t *testing.T) {
	m := newTestModel()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter}, runes("/"))
	m = press(t, m, typeText("zz")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, int64(100), m.State().OwnerID)
	require.Equal(t, "zz", m.State().Query)

	m = press(t, m, runes("r"))
	assert.False(t, m.State().HasOwner())
	assert.Equal(t, "", m.State().Query)
	out := m.View()
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "Milk")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderTable(t *testing.T) {
	v := catalog.View{
		Rows: []catalog.Row{
			{ID: 7, Name: "Hammer", Category: "T - Tools", Owner: "Sam"},
			{ID: 8, Name: "Stray"},
		},
	}
	out := RenderTable(v, DefaultStyles())
	for _, want := range []string{"ID", "Product", "Category", "User", "Hammer", "T - Tools", "Sam", "Stray"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Hammer"), strings.Index(out, "Stray"))

	empty := RenderTable(catalog.View{NoResults: true, Message: catalog.NoResultsMessage}, DefaultStyles())
	assert.Contains(t, empty, catalog.NoResultsMessage)
	assert.NotContains(t, empty, "Product")
}
