package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shelf/internal/liststore"
	"github.com/idilsaglam/shelf/internal/listview"
	"github.com/idilsaglam/shelf/internal/ui"
)

// rowItem adapts a rendered row to bubbles/list.Item
type rowItem struct {
	row listview.Row
}

func (i rowItem) Title() string       { return i.row.Name }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.row.Name }

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+listview.Line(it.row))
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle"))
	removeBind = key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove"))
)

// Shopping is the interactive shopping list. It never touches the
// collection directly: keys are turned into clicks on the rendered row's
// controls and handed to the view's delegated handler.
type Shopping struct {
	store *liststore.Store
	view  *listview.View
	list  list.Model

	// Inline add form
	adding bool
	ti     textinput.Model

	width, height int
}

func NewShopping(s *liststore.Store, v *listview.View) Shopping {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, toggleBind, removeBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, toggleBind, removeBind} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Item name..."
	ti.CharLimit = 200

	m := Shopping{store: s, view: v, list: l, ti: ti, width: 80, height: 24}
	m.sync()
	return m
}

// sync copies the view's latest rendering into the list widget.
func (m *Shopping) sync() {
	rows := m.view.Rows()
	items := make([]list.Item, 0, len(rows))
	done := 0
	for _, r := range rows {
		items = append(items, rowItem{row: r})
		if r.Complete.Checked {
			done++
		}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if n := len(m.list.VisibleItems()); idx >= n && n > 0 {
		m.list.Select(n - 1)
	}

	t := ui.Current()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Shopping"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), len(rows)-done,
		t.Accent.Render("Total"), len(rows),
	)
}

func (m Shopping) selected() (listview.Row, bool) {
	it, ok := m.list.SelectedItem().(rowItem)
	return it.row, ok
}

func (m Shopping) Init() tea.Cmd { return nil }

func (m Shopping) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = sz.Width, sz.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		var cmd tea.Cmd
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter":
				// A blank name is rejected silently and the form keeps its text.
				if _, err := m.store.Add(m.ti.Value()); err != nil {
					return m, nil
				}
				m.ti.SetValue("")
				m.sync()
				return m, nil
			case "esc":
				m.adding = false
				m.ti.SetValue("")
				m.ti.Blur()
				m.resize()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case k.String() == "ctrl+c", k.String() == "q":
			return m, tea.Quit
		case k.String() == "esc" && m.list.FilterState() == list.Unfiltered:
			return m, tea.Quit
		case key.Matches(k, addBind):
			m.adding = true
			m.ti.SetValue("")
			m.ti.Focus()
			m.resize()
			return m, textinput.Blink
		case key.Matches(k, toggleBind):
			if r, ok := m.selected(); ok {
				m.view.HandleClick(r.Complete)
				m.sync()
			}
			return m, nil
		case key.Matches(k, removeBind):
			if r, ok := m.selected(); ok {
				m.view.HandleClick(r.Remove)
				m.sync()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Shopping) resize() {
	h := m.height - 4
	if m.adding {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Shopping) View() string {
	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render("Add item\n"+m.ti.View())
	}
	return ui.Panel([]string{content})
}

// RunShopping starts the interactive list on the alternate screen.
// Every mutation is persisted by whatever the store's subscribers do.
func RunShopping(s *liststore.Store, v *listview.View) error {
	_, err := tea.NewProgram(NewShopping(s, v), tea.WithAltScreen()).Run()
	return err
}
