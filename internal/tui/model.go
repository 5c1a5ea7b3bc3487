package tui

import (
	"strings"

	"catalog-browser/internal/catalog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusTabs focus = iota
	focusSearch
)

// Model is the bubbletea model of the catalog browser. All filtering goes
// through the browser's reducer; the model only translates keys into actions.
type Model struct {
	browser *catalog.Browser
	state   catalog.State
	view    catalog.View

	input  textinput.Model
	cursor int // index into view.Tabs
	focus  focus
	err    error

	styles Styles
}

// New creates a model in the browser's initial state.
func New(b *catalog.Browser) Model {
	in := textinput.New()
	in.Placeholder = "Search"
	in.Prompt = "🔍 "
	in.CharLimit = 255
	in.Width = 40

	s := b.Initial()
	return Model{
		browser: b,
		state:   s,
		view:    b.Render(s),
		input:   in,
		focus:   focusTabs,
		styles:  DefaultStyles(),
	}
}

// State returns the current filter state.
func (m Model) State() catalog.State {
	return m.state
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// dispatch runs a through the reducer and refreshes the view.
func (m *Model) dispatch(a catalog.Action) {
	next, err := m.browser.Reduce(m.state, a)
	m.err = err
	if err != nil {
		return
	}
	m.state = next
	m.view = m.browser.Render(next)
	if m.input.Value() != next.Query {
		m.input.SetValue(next.Query)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.focus == focusSearch {
		switch key.String() {
		case "esc", "enter":
			m.focus = focusTabs
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		// Live filtering: every keystroke becomes a set_query action.
		if m.input.Value() != m.state.Query {
			m.dispatch(catalog.Action{Type: catalog.ActionSetQuery, Query: m.input.Value()})
		}
		return m, cmd
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.focus = focusSearch
		cmd := m.input.Focus()
		return m, cmd
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.view.Tabs)-1 {
			m.cursor++
		}
	case "enter", " ":
		tab := m.view.Tabs[m.cursor]
		if tab.ID == catalog.NoOwner {
			m.dispatch(catalog.Action{Type: catalog.ActionResetOwner})
		} else {
			m.dispatch(catalog.Action{Type: catalog.ActionSelectOwner, OwnerID: tab.ID})
		}
	case "c":
		m.dispatch(catalog.Action{Type: catalog.ActionClearQuery})
	case "r":
		m.dispatch(catalog.Action{Type: catalog.ActionResetAll})
		m.cursor = 0
	}
	return m, nil
}

// View renders the page.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Product Categories"))
	sb.WriteString("\n")

	tabs := make([]string, 0, len(m.view.Tabs))
	for i, tab := range m.view.Tabs {
		style := m.styles.Tab
		if tab.Active {
			style = m.styles.TabActive
		}
		if i == m.cursor && m.focus == focusTabs {
			style = style.Inherit(m.styles.TabCursor)
		}
		tabs = append(tabs, style.Render(tab.Name))
	}
	sb.WriteString(strings.Join(tabs, "|"))
	sb.WriteString("\n\n")

	sb.WriteString(m.input.View())
	if m.view.ShowClear {
		sb.WriteString(m.styles.Muted.Render("  (c to clear)"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(RenderTable(m.view, m.styles))
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render("←/→ owner • enter select • / search • c clear • r reset all • q quit"))
	sb.WriteString("\n")
	return sb.String()
}
