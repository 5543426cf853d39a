// Package ui is the bubbletea front end for the picker session: key
// handling, search input, and painting the line-addressable view.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattfen/huepick/pkg/picker"
)

// RenderRequestMsg asks the model to rebuild the view. The session's
// debouncer sends it through the program so rebuilds stay on the update
// loop.
type RenderRequestMsg struct{}

// CatalogChangedMsg reports a theme directory change from the watcher.
type CatalogChangedMsg struct{}

// Bridge forwards debounced render requests into a running program. The
// session holds the Request method before the program exists; Attach wires
// the program in once it is created.
type Bridge struct {
	p *tea.Program
}

// Attach binds the running program.
func (b *Bridge) Attach(p *tea.Program) { b.p = p }

// Request implements the session's render-request callback.
func (b *Bridge) Request() {
	if b.p != nil {
		b.p.Send(RenderRequestMsg{})
	}
}

// status is the shared notification line, written synchronously by the
// session's notifier during command dispatch.
type status struct {
	level   picker.Level
	message string
}

// Model is the bubbletea model wrapping a picker session.
type Model struct {
	session *picker.Session
	status  *status

	searchInput textinput.Model
	insertMode  bool
	assignMode  bool

	width  int
	height int
	scroll int

	quitting bool
}

// NewModel creates the UI model. The returned notifier must be passed to
// the session so messages reach the status line.
func NewModel(session *picker.Session) (*Model, picker.Notifier) {
	ti := textinput.New()
	ti.Placeholder = "Search themes..."
	ti.CharLimit = 64
	ti.Width = 40

	st := &status{}
	m := &Model{
		session:     session,
		status:      st,
		searchInput: ti,
		width:       80,
		height:      24,
	}
	notify := func(level picker.Level, message string) {
		st.level = level
		st.message = message
	}
	return m, notify
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = msg.Width - 10
		return m, nil

	case RenderRequestMsg:
		m.session.Render(true)
		return m, nil

	case CatalogChangedMsg:
		m.session.RefreshCatalog()
		return m, nil

	case tea.KeyMsg:
		if m.insertMode {
			return m.updateInsertMode(msg)
		}
		return m.updateNormalMode(msg)
	}
	return m, nil
}

// updateInsertMode routes keys to the search input; every edit feeds the
// session's debounced re-render.
func (m *Model) updateInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.insertMode = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.insertMode = false
		m.searchInput.Blur()
		if err := m.session.SelectAtCursor(false); err == nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case "up":
		m.session.MoveCursor(-1)
		return m, nil
	case "down":
		m.session.MoveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.session.SetSearch(m.searchInput.Value(), "")
	return m, cmd
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.assignMode {
		m.assignMode = false
		_ = m.session.AssignQuickSlot(key)
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		m.session.Close(false)
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if m.session.SearchQuery() != "" {
			m.searchInput.SetValue("")
			m.session.ClearSearch()
			return m, nil
		}
		m.session.Close(true)
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.session.MoveCursor(1)
	case "k", "up":
		m.session.MoveCursor(-1)
	case "]":
		m.session.JumpNextHeader()
	case "[":
		m.session.JumpPrevHeader()
	case "b":
		m.session.JumpNextBookmark()
	case "B":
		m.session.JumpPrevBookmark()
	case "t":
		m.session.JumpNextRecent()
	case "T":
		m.session.JumpPrevRecent()
	case "l", "right":
		m.session.JumpEnterGroup()
	case "h", "left":
		m.session.JumpExitGroup()

	case "/", "i":
		m.insertMode = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "enter":
		if err := m.session.SelectAtCursor(false); err == nil {
			m.quitting = true
			return m, tea.Quit
		}
	case "o":
		_ = m.session.SelectAtCursor(true)

	case "m":
		_ = m.session.ToggleBookmarkAtCursor()
	case "a":
		m.assignMode = true
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		_, _ = m.session.JumpToQuickSlot(key)

	case "s":
		m.session.CycleSortMode()
	case "S":
		m.session.ToggleSortReversed()
	case "x":
		m.session.ToggleSortDisabled()

	case " ":
		m.session.ToggleCollapseAtCursor()
	case "c":
		m.session.CollapseAll()
	case "e":
		m.session.ExpandAll()
	case "f":
		m.session.ToggleOnlyBookmarked()
	case "F":
		m.session.ToggleFlatView()

	case "u":
		_ = m.session.Undo()
	case "r":
		_ = m.session.Redo()
	case "g":
		m.session.ShowHistoryStats()
	case "R":
		m.session.RefreshCatalog()

	case "y":
		m.yank()
	}
	return m, nil
}

// yank copies the theme name under the cursor to the system clipboard.
func (m *Model) yank() {
	name := m.session.View().ItemAt(m.session.Cursor())
	if name == "" {
		m.status.level = picker.LevelWarn
		m.status.message = "nothing to yank here"
		return
	}
	if err := clipboard.WriteAll(name); err != nil {
		m.status.level = picker.LevelWarn
		m.status.message = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.status.level = picker.LevelInfo
	m.status.message = "yanked " + name
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.session.View()
	query := m.session.SearchQuery()

	var b strings.Builder
	b.WriteString(styleTitle.Render("huepick"))
	b.WriteString("  ")
	b.WriteString(styleFooter.Render(fmt.Sprintf("sort:%s", m.session.SortMode())))
	b.WriteString("\n")

	if m.insertMode || query != "" {
		b.WriteString("  " + m.searchInput.View())
		b.WriteString("\n")
	}

	contentHeight := m.contentHeight()
	m.ensureVisible(v.Cursor, len(v.Lines), contentHeight)

	end := m.scroll + contentHeight
	if end > len(v.Lines) {
		end = len(v.Lines)
	}
	for i := m.scroll; i < end; i++ {
		b.WriteString(m.renderLine(v, i, query))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderLine(v *picker.ViewState, i int, query string) string {
	l := v.Lines[i]
	text := truncate(l.Text, m.width-2)

	switch {
	case i == v.Cursor:
		return styleCursor.Render("▌" + text)
	case l.Kind == picker.LineHeader:
		return " " + styleHeader.Render(text)
	case l.Kind == picker.LinePlaceholder:
		return " " + stylePlaceholder.Render(text)
	default:
		if query != "" {
			return " " + highlightLine(text, query, styleItem)
		}
		return " " + styleItem.Render(text)
	}
}

func (m *Model) renderStatus() string {
	if m.status.message == "" {
		return styleFooter.Render("j/k move · / search · enter select · m mark · u/r undo/redo · q quit")
	}
	var style lipgloss.Style
	switch m.status.level {
	case picker.LevelWarn:
		style = styleStatusWarn
	case picker.LevelError:
		style = styleStatusError
	default:
		style = styleStatusInfo
	}
	return style.Render(m.status.message)
}

func (m *Model) contentHeight() int {
	// Title, optional search line, status line.
	h := m.height - 2
	if m.insertMode || m.session.SearchQuery() != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

// ensureVisible keeps the cursor inside the viewport with a small
// scrolloff, the same approach the dashboard views use.
func (m *Model) ensureVisible(cursor, total, contentHeight int) {
	scrolloff := contentHeight / 4
	target := cursor - scrolloff
	if target < 0 {
		target = 0
	}
	maxScroll := total - contentHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if cursor >= m.scroll+contentHeight {
		m.scroll = cursor - contentHeight + 1
	} else if cursor < m.scroll {
		m.scroll = target
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
