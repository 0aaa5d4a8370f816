// Package tui draws a paged table in the terminal with Bubble Tea.
//
// Model implements both table.Surface and tea.Model: a table.Widget mounts
// onto it, and key presses are turned into table events.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubbletable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pagedtable/internal/table"
)

const (
	// maxColumnWidth caps a column so long URLs do not push others off screen.
	maxColumnWidth = 40
	// minColumnWidth keeps empty columns visible.
	minColumnWidth = 4

	// headerHeight is the header line plus its bottom border.
	headerHeight = 2

	focusMarker = "›"
	noFocus     = -1
)

// ErrNotMounted is returned for key presses before a widget has subscribed.
var ErrNotMounted = errors.New("tui: model has no subscriber")

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the line drawn above the table.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// Model is the terminal mount target.
type Model struct {
	keys   KeyMap
	help   help.Model
	rows   bubbletable.Model
	prompt textinput.Model

	header   []table.HeaderCell
	cells    [][]string
	controls table.Controls
	active   int
	focus    int

	handler   func(table.Event) error
	err       error
	title     string
	prompting bool
	quitting  bool
	width     int
}

// NewModel creates an empty model using keys.
func NewModel(keys KeyMap, opts ...Option) *Model {
	prompt := textinput.New()
	prompt.Prompt = "page: "
	prompt.CharLimit = 6
	prompt.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}

	m := &Model{
		keys:   keys,
		help:   help.New(),
		rows:   bubbletable.New(bubbletable.WithFocused(false), bubbletable.WithStyles(tableStyles())),
		prompt: prompt,
		active: noFocus,
		focus:  noFocus,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DrawHeader implements table.Surface. Focus stays on the same column
// across redraws and moves to the first sortable column when unset.
func (m *Model) DrawHeader(cells []table.HeaderCell) error {
	m.header = cells
	if m.focus == noFocus || m.focus >= len(cells) || !cells[m.focus].Sortable {
		m.focus = m.firstSortable()
	}
	m.layout()
	return nil
}

// ReplaceRows implements table.Surface.
func (m *Model) ReplaceRows(rows []table.Row) error {
	m.cells = make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			line[j] = cell.Text
		}
		m.cells[i] = line
	}
	m.layout()
	return nil
}

// DrawControls implements table.Surface.
func (m *Model) DrawControls(controls table.Controls) error {
	m.controls = controls
	return nil
}

// MarkActivePage implements table.Surface.
func (m *Model) MarkActivePage(index int) error {
	if index < 0 || index >= len(m.controls.Pages) {
		index = noFocus
	}
	m.active = index
	for i := range m.controls.Pages {
		m.controls.Pages[i].Active = m.controls.Pages[i].Index == index
	}
	m.controls.Prev.Enabled = index > 0
	m.controls.Next.Enabled = index >= 0 && index < len(m.controls.Pages)-1
	return nil
}

// Subscribe implements table.Surface.
func (m *Model) Subscribe(handler func(table.Event) error) {
	m.handler = handler
}

// ActivePage returns the highlighted page index, or -1.
func (m *Model) ActivePage() int { return m.active }

// FocusedField returns the field key of the focused header, or "".
func (m *Model) FocusedField() string {
	if m.focus == noFocus {
		return ""
	}
	return m.header[m.focus].FieldKey
}

// Err returns the error of the last rejected interaction, if any.
func (m *Model) Err() error { return m.err }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		m.dispatch(table.PrevEvent())
	case key.Matches(msg, m.keys.Next):
		m.dispatch(table.NextEvent())
	case key.Matches(msg, m.keys.Page):
		n, _ := strconv.Atoi(msg.String())
		m.dispatch(table.PageEvent(n))
	case key.Matches(msg, m.keys.GoTo):
		m.prompting = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.FocusNext):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.FocusPrev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Sort):
		if m.focus != noFocus {
			m.dispatch(table.SortEvent(m.header[m.focus].FieldKey))
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if value == "" {
			return m, nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			m.err = fmt.Errorf("%w: page %q is not a number", table.ErrInvalidArgument, value)
			return m, nil
		}
		m.dispatch(table.PageEvent(n))
		return m, nil
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
}

// dispatch hands ev to the widget and keeps any rejection for the status line.
func (m *Model) dispatch(ev table.Event) {
	if m.handler == nil {
		m.err = ErrNotMounted
		return
	}
	m.err = m.handler(ev)
}

// moveFocus cycles header focus over sortable columns in direction step.
func (m *Model) moveFocus(step int) {
	n := len(m.header)
	if n == 0 || m.focus == noFocus {
		return
	}
	for i, idx := 0, m.focus; i < n; i++ {
		idx = (idx + step + n) % n
		if m.header[idx].Sortable {
			m.focus = idx
			break
		}
	}
	m.layout()
}

func (m *Model) firstSortable() int {
	for i, cell := range m.header {
		if cell.Sortable {
			return i
		}
	}
	return noFocus
}

// layout pushes header and cells into the bubbles table, sizing each column
// to its widest value.
func (m *Model) layout() {
	cols := make([]bubbletable.Column, len(m.header))
	for i, cell := range m.header {
		title := cell.Label
		if cell.Indicator != "" {
			title += " " + cell.Indicator
		}
		if i == m.focus {
			title = focusMarker + title
		}

		width := lipgloss.Width(title)
		for _, line := range m.cells {
			if i < len(line) {
				width = max(width, lipgloss.Width(line[i]))
			}
		}
		cols[i] = bubbletable.Column{Title: title, Width: min(max(width, minColumnWidth), maxColumnWidth)}
	}

	rows := make([]bubbletable.Row, 0, len(m.cells))
	for _, line := range m.cells {
		if len(line) == len(cols) {
			rows = append(rows, bubbletable.Row(line))
		}
	}

	// Rows are cleared first so the column count never disagrees with them.
	m.rows.SetRows(nil)
	m.rows.SetColumns(cols)
	m.rows.SetRows(rows)
	m.rows.SetHeight(len(rows) + headerHeight)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n")
	}
	b.WriteString(m.rows.View())
	b.WriteString("\n\n")
	b.WriteString(m.controlsView())
	b.WriteString("\n")

	if total := len(m.controls.Pages); total > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("page %d of %d", m.active+1, total)))
	} else {
		b.WriteString(statusStyle.Render("no records"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.prompting {
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) controlsView() string {
	parts := make([]string, 0, len(m.controls.Pages)+2)
	parts = append(parts, arrow("<", m.controls.Prev.Enabled))
	for _, p := range m.controls.Pages {
		if p.Active {
			parts = append(parts, activeStyle.Render(p.Label))
			continue
		}
		parts = append(parts, controlStyle.Render(p.Label))
	}
	parts = append(parts, arrow(">", m.controls.Next.Enabled))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func arrow(label string, enabled bool) string {
	if enabled {
		return controlStyle.Render(label)
	}
	return disabledStyle.Render(label)
}

// Run drives m until the user quits or ctx is cancelled.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithContext(ctx))
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
