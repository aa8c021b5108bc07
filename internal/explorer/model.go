// Package explorer implements the interactive document browser: a
// key/value table over the parsed TOML tree with enter/left navigation
// and type-ahead filtering.
package explorer

import (
	"fmt"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/gravures/tomlraider/internal/formatter"
	"github.com/gravures/tomlraider/internal/raider"
)

const (
	defaultKeyColWidth = 30
	minValueColWidth   = 20
)

// row pairs a rendered table row with the segment it navigates to.
// Scalar leaves carry a nil segment.
type row struct {
	key     string
	value   string
	segment raider.Segment
}

// Model is the bubbletea model for the explorer.
type Model struct {
	table bubtable.Model

	root raider.Document
	node any
	path raider.Path

	rows   []row
	filter string

	width     int
	height    int
	noColor   bool
	sortOrder formatter.SortOrder
	quitting  bool
}

// NewModel creates an explorer rooted at the given document.
func NewModel(root raider.Document, sortOrder formatter.SortOrder, noColor bool) *Model {
	columns := []bubtable.Column{
		{Title: "KEY", Width: defaultKeyColWidth},
		{Title: "VALUE", Width: 60},
	}

	t := bubtable.New(
		bubtable.WithColumns(columns),
		bubtable.WithFocused(true),
		bubtable.WithHeight(20),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true)
	if noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	}
	t.SetStyles(s)

	m := &Model{
		table:     t,
		root:      root,
		node:      root,
		width:     80,
		height:    24,
		noColor:   noColor,
		sortOrder: sortOrder,
	}
	m.reload()
	return m
}

// nodeRows converts the current node into navigable rows.
func nodeRows(node any, order formatter.SortOrder) []row {
	switch v := node.(type) {
	case map[string]any:
		if len(v) == 0 {
			return []row{{key: "(value)", value: "{}"}}
		}
		out := make([]row, 0, len(v))
		for _, k := range formatter.SortedKeys(v, order) {
			out = append(out, row{key: k, value: formatter.Stringify(v[k]), segment: raider.Key(k)})
		}
		return out
	case []any:
		if len(v) == 0 {
			return []row{{key: "(value)", value: "[]"}}
		}
		out := make([]row, 0, len(v))
		for i, e := range v {
			out = append(out, row{key: fmt.Sprintf("[%d]", i), value: formatter.Stringify(e), segment: raider.Index(i)})
		}
		return out
	default:
		return []row{{key: "(value)", value: formatter.Stringify(node)}}
	}
}

// reload regenerates rows from the current node and reapplies the filter.
func (m *Model) reload() {
	m.rows = nodeRows(m.node, m.sortOrder)
	m.applyFilter()
}

// applyFilter narrows rows by key prefix and pushes them to the table.
func (m *Model) applyFilter() {
	visible := m.rows
	if m.filter != "" {
		visible = nil
		for _, r := range m.rows {
			if strings.HasPrefix(r.key, m.filter) {
				visible = append(visible, r)
			}
		}
	}

	valueWidth := m.valueColWidth()
	tableRows := make([]bubtable.Row, len(visible))
	for i, r := range visible {
		tableRows[i] = bubtable.Row{r.key, runewidth.Truncate(r.value, valueWidth, "…")}
	}
	m.table.SetRows(tableRows)
	if m.table.Cursor() >= len(visible) {
		m.table.SetCursor(0)
	}
}

// visibleRows returns the rows currently shown, post-filter.
func (m *Model) visibleRows() []row {
	if m.filter == "" {
		return m.rows
	}
	var out []row
	for _, r := range m.rows {
		if strings.HasPrefix(r.key, m.filter) {
			out = append(out, r)
		}
	}
	return out
}

func (m *Model) valueColWidth() int {
	w := m.width - defaultKeyColWidth - 3
	if w < minValueColWidth {
		w = minValueColWidth
	}
	return w
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter", "right":
			m.descend()
			return m, nil

		case "left", "backspace":
			m.ascend()
			return m, nil

		case "esc":
			if m.filter != "" {
				m.filter = ""
				m.applyFilter()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}

		if s := msg.String(); len(s) == 1 && isFilterRune(s[0]) {
			m.filter += s
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// descend navigates into the selected row.
func (m *Model) descend() {
	visible := m.visibleRows()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(visible) {
		return
	}
	seg := visible[cursor].segment
	if seg == nil {
		return
	}
	next, err := raider.Resolve(m.node, raider.Path{seg})
	if err != nil {
		return
	}
	m.node = next
	m.path = append(m.path, seg)
	m.filter = ""
	m.reload()
	m.table.SetCursor(0)
}

// ascend navigates back to the parent node.
func (m *Model) ascend() {
	if len(m.path) == 0 {
		return
	}
	m.path = m.path[:len(m.path)-1]
	node, err := raider.Resolve(m.root, m.path)
	if err != nil {
		// The path was built by descending, so this cannot fail; reset
		// to the root as a safety net.
		m.path = nil
		node = m.root
	}
	m.node = node
	m.filter = ""
	m.reload()
	m.table.SetCursor(0)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	crumb := "Path: " + m.path.String()
	if m.noColor {
		b.WriteString(crumb + "\n")
	} else {
		crumbStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
		b.WriteString(crumbStyle.Render(crumb) + "\n")
	}

	separator := strings.Repeat("─", m.width)
	if !m.noColor {
		separator = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(separator)
	}
	b.WriteString(separator + "\n")

	b.WriteString(m.table.View())

	if m.filter != "" {
		filterText := "Filter: " + m.filter
		if m.noColor {
			b.WriteString("\n" + filterText)
		} else {
			filterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
			b.WriteString("\n" + filterStyle.Render(filterText))
		}
	}

	return b.String()
}

// SetSize adjusts the layout to the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Reserve lines for breadcrumb, separator, and filter indicator.
	tableHeight := height - 3
	if tableHeight < 5 {
		tableHeight = 5
	}
	m.table.SetHeight(tableHeight)
	m.table.SetColumns([]bubtable.Column{
		{Title: "KEY", Width: defaultKeyColWidth},
		{Title: "VALUE", Width: m.valueColWidth()},
	})
	m.applyFilter()
}

// Path returns the current navigation path.
func (m *Model) Path() raider.Path {
	return m.path
}

// CurrentNode returns the node being displayed.
func (m *Model) CurrentNode() any {
	return m.node
}

func isFilterRune(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}
