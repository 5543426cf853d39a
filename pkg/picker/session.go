package picker

import (
	"fmt"
	"log"
	"time"

	"github.com/mattfen/huepick/pkg/catalog"
	"github.com/mattfen/huepick/pkg/history"
	"github.com/mattfen/huepick/pkg/marks"
	"github.com/mattfen/huepick/pkg/search"
	"github.com/mattfen/huepick/pkg/sorting"
	"github.com/mattfen/huepick/pkg/store"
	"github.com/mattfen/huepick/pkg/watcher"
)

// DefaultRenderDebounce coalesces rapid re-render requests (one per search
// keystroke) into a single view rebuild.
const DefaultRenderDebounce = 40 * time.Millisecond

const renderToken = "render"

// Level classifies notifications surfaced to the user.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Notifier receives user-facing messages.
type Notifier func(level Level, message string)

// ApplyFunc commits a selection to the host environment. Its failure is
// surfaced but never corrupts picker state.
type ApplyFunc func(name string, persistent bool) error

// UsageRecorder is notified of committed selections, feeding the usage sort.
type UsageRecorder interface {
	Record(name string) error
}

// SessionFlags is the per-session view configuration. It resets when the
// session closes; sort mode and collapsed groups are also persisted.
type SessionFlags struct {
	SearchQuery    string
	SearchScope    string
	Collapsed      map[string]bool
	SortMode       sorting.Mode
	SortReversed   bool
	SortDisabled   bool
	OnlyBookmarked bool
	FlatView       bool
}

// Options wires a Session to its collaborators. Provider and Store are
// required; everything else has a usable default.
type Options struct {
	Provider     catalog.Provider
	Availability catalog.Availability
	Aliases      catalog.Aliases
	Store        store.Store
	Apply        ApplyFunc
	Notify       Notifier
	Usage        UsageRecorder
	UsageCounts  map[string]int
	CustomSort   sorting.Comparator

	// Scope is the active profile scope for bookmarks and quick slots.
	// Empty means the global scope.
	Scope string

	// Active is the theme applied in the host environment when the
	// session starts; used for the active marker and close(revert).
	Active string

	HistorySize       int
	BookmarkCapacity  int
	RenderDebounce    time.Duration
	HideBookmarkGroup bool
	HideRecentGroup   bool

	// RequestRender is called (debounced) when the session wants the host
	// to rebuild and repaint. Hosts running an event loop should turn this
	// into a message and call Render(true) from the loop. When nil the
	// session rebuilds inline.
	RequestRender func()
}

// OpenOptions configures Open.
type OpenOptions struct {
	// RestrictToConfigured limits the catalog to the given theme names.
	RestrictToConfigured bool
	Configured           []string
}

// Session owns all mutable picker state. One session is active at a time;
// all state transitions are synchronous.
type Session struct {
	provider   catalog.Provider
	avail      catalog.Availability
	aliases    catalog.Aliases
	store      store.Store
	apply      ApplyFunc
	notify     Notifier
	recorder   UsageRecorder
	usage      map[string]int
	customSort sorting.Comparator

	hist      *history.Stack
	bookmarks *marks.Bookmarks
	slots     *marks.QuickSlots
	flags     SessionFlags
	scope     string

	view              *ViewState
	lastCursorByGroup map[string]int

	deb            *watcher.Debouncer
	renderDebounce time.Duration
	requestRender  func()

	active     string
	openedWith string
	restricted *catalog.Node
	opened     bool

	hideBookmarkGroup bool
	hideRecentGroup   bool
}

// NewSession builds a session from persisted state. A missing store means
// state is held in memory only.
func NewSession(opts Options) *Session {
	if opts.Store == nil {
		opts.Store = &store.MemStore{}
	}
	if opts.Availability == nil {
		opts.Availability = catalog.AllAvailable
	}
	if opts.Notify == nil {
		opts.Notify = func(Level, string) {}
	}
	if opts.RenderDebounce == 0 {
		opts.RenderDebounce = DefaultRenderDebounce
	}

	st := opts.Store.Load()
	collapsed := make(map[string]bool, len(st.Collapsed))
	for _, key := range st.Collapsed {
		collapsed[key] = true
	}

	s := &Session{
		provider:   opts.Provider,
		avail:      opts.Availability,
		aliases:    opts.Aliases,
		store:      opts.Store,
		apply:      opts.Apply,
		notify:     opts.Notify,
		recorder:   opts.Usage,
		usage:      opts.UsageCounts,
		customSort: opts.CustomSort,

		hist:      history.Restore(st.History, opts.HistorySize),
		bookmarks: marks.RestoreBookmarks(st.Bookmarks, opts.BookmarkCapacity),
		slots:     marks.RestoreQuickSlots(st.QuickSlots),
		flags: SessionFlags{
			Collapsed: collapsed,
			SortMode:  sorting.ParseMode(st.SortMode),
		},
		scope: opts.Scope,

		lastCursorByGroup: make(map[string]int),

		deb:            watcher.NewDebouncer(opts.RenderDebounce),
		renderDebounce: opts.RenderDebounce,
		requestRender:  opts.RequestRender,

		active:            opts.Active,
		hideBookmarkGroup: opts.HideBookmarkGroup,
		hideRecentGroup:   opts.HideRecentGroup,
	}
	return s
}

// Open starts the session: refreshes the catalog, applies any restriction,
// and builds the first view.
func (s *Session) Open(opts OpenOptions) error {
	if err := s.provider.Refresh(); err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	s.restricted = nil
	if opts.RestrictToConfigured {
		keep := make(map[string]bool, len(opts.Configured))
		for _, name := range opts.Configured {
			keep[name] = true
		}
		s.restricted = catalog.Restrict(s.provider.Current(), keep)
	}
	s.opened = true
	s.openedWith = s.active
	// A fresh debouncer per open: Close tears the previous one down.
	s.deb = watcher.NewDebouncer(s.renderDebounce)
	s.Render(true)
	return nil
}

// Opened reports whether the session is open.
func (s *Session) Opened() bool { return s.opened }

// SetNotifier replaces the notifier. Hosts that build their UI after the
// session use this to wire the status line in.
func (s *Session) SetNotifier(n Notifier) {
	if n == nil {
		n = func(Level, string) {}
	}
	s.notify = n
}

// SetRequestRender replaces the debounced render-request callback.
func (s *Session) SetRequestRender(fn func()) { s.requestRender = fn }

// root returns the catalog tree the view is built from.
func (s *Session) root() *catalog.Node {
	if s.restricted != nil {
		return s.restricted
	}
	if s.provider == nil {
		return nil
	}
	return s.provider.Current()
}

// Render rebuilds the view. Non-forced renders are debounced so rapid
// keystrokes cost one rebuild, not one per event.
func (s *Session) Render(forceImmediate bool) {
	if forceImmediate {
		s.rebuild()
		return
	}
	if s.requestRender != nil {
		s.deb.Schedule(renderToken, s.renderDebounce, s.requestRender)
		return
	}
	s.deb.Schedule(renderToken, s.renderDebounce, s.rebuild)
}

func (s *Session) rebuild() {
	s.view = s.buildView()
	s.rememberCursor()
}

// View returns the current view, building one if none exists yet.
func (s *Session) View() *ViewState {
	if s.view == nil {
		s.rebuild()
	}
	return s.view
}

// Cursor returns the current cursor line.
func (s *Session) Cursor() int {
	return s.View().Cursor
}

// SetCursor moves the cursor, updating the per-group cursor memory.
func (s *Session) SetCursor(line int) {
	v := s.View()
	if line < 0 || line >= len(v.Lines) {
		return
	}
	v.Cursor = line
	s.rememberCursor()
}

func (s *Session) rememberCursor() {
	v := s.view
	if v == nil || v.Cursor < 0 || v.Cursor >= len(v.Lines) {
		return
	}
	s.lastCursorByGroup[v.Lines[v.Cursor].Group()] = v.Cursor
}

// RefreshCatalog re-reads the catalog from the provider and re-renders.
func (s *Session) RefreshCatalog() {
	if err := s.provider.Refresh(); err != nil {
		s.notify(LevelWarn, fmt.Sprintf("catalog refresh failed: %v", err))
		return
	}
	s.Render(false)
}

// ─── Search ──────────────────────────────────────────────────────────────

// SetSearch sets the fuzzy query and group scope and schedules a re-render.
func (s *Session) SetSearch(query, scope string) {
	s.flags.SearchQuery = search.NormalizeQuery(query)
	s.flags.SearchScope = scope
	s.Render(false)
}

// ClearSearch drops the query and scope.
func (s *Session) ClearSearch() {
	s.flags.SearchQuery = ""
	s.flags.SearchScope = ""
	s.Render(false)
}

// SearchQuery returns the active query.
func (s *Session) SearchQuery() string { return s.flags.SearchQuery }

// ─── Sorting ─────────────────────────────────────────────────────────────

// CycleSortMode advances alpha → recent → usage → alpha.
func (s *Session) CycleSortMode() {
	s.flags.SortMode = s.flags.SortMode.Next()
	s.notify(LevelInfo, "sort: "+s.flags.SortMode.String())
	s.persist()
	s.Render(false)
}

// ToggleSortDisabled bypasses sorting entirely, showing catalog order.
func (s *Session) ToggleSortDisabled() {
	s.flags.SortDisabled = !s.flags.SortDisabled
	s.Render(false)
}

// ToggleSortReversed reverses the sorted output.
func (s *Session) ToggleSortReversed() {
	s.flags.SortReversed = !s.flags.SortReversed
	s.Render(false)
}

// SortMode returns the active sort mode.
func (s *Session) SortMode() sorting.Mode { return s.flags.SortMode }

// ─── Collapsing ──────────────────────────────────────────────────────────

// ToggleGroupCollapsed flips a group's collapse state. Unknown keys are a
// no-op.
func (s *Session) ToggleGroupCollapsed(key string) {
	if !s.validCollapseKey(key) {
		return
	}
	if s.flags.Collapsed == nil {
		s.flags.Collapsed = make(map[string]bool)
	}
	s.flags.Collapsed[key] = !s.flags.Collapsed[key]
	s.persist()
	s.Render(false)
}

// ToggleCollapseAtCursor collapses or expands the group under the cursor.
func (s *Session) ToggleCollapseAtCursor() {
	v := s.View()
	if v.Cursor < 0 || v.Cursor >= len(v.Lines) {
		return
	}
	l := v.Lines[v.Cursor]
	switch l.Kind {
	case LineHeader:
		s.ToggleGroupCollapsed(l.CollapseKey)
	case LineItem:
		if g := l.Group(); g != "" {
			s.ToggleGroupCollapsed(s.collapseKeyForGroup(g))
		}
	}
}

// CollapseAll collapses every group, including the synthetic sections.
func (s *Session) CollapseAll() {
	if s.flags.Collapsed == nil {
		s.flags.Collapsed = make(map[string]bool)
	}
	for _, key := range s.collapseKeys() {
		s.flags.Collapsed[key] = true
	}
	s.persist()
	s.Render(false)
}

// ExpandAll expands everything.
func (s *Session) ExpandAll() {
	s.flags.Collapsed = make(map[string]bool)
	s.persist()
	s.Render(false)
}

func (s *Session) collapseKeys() []string {
	keys := []string{CollapseBookmarks, CollapseRecent, CollapseResults}
	var walk func(n *catalog.Node)
	walk = func(n *catalog.Node) {
		if n == nil || n.Kind != catalog.KindGroup {
			return
		}
		if n.Name != "" {
			keys = append(keys, n.Name)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s.root())
	return keys
}

func (s *Session) validCollapseKey(key string) bool {
	for _, k := range s.collapseKeys() {
		if k == key {
			return true
		}
	}
	return false
}

func (s *Session) collapseKeyForGroup(group string) string {
	switch group {
	case BookmarksGroup:
		return CollapseBookmarks
	case RecentGroup:
		return CollapseRecent
	case ResultsGroup:
		return CollapseResults
	}
	return group
}

// ─── View filters ────────────────────────────────────────────────────────

// ToggleOnlyBookmarked restricts the catalog view to bookmarked themes.
func (s *Session) ToggleOnlyBookmarked() {
	s.flags.OnlyBookmarked = !s.flags.OnlyBookmarked
	s.Render(false)
}

// ToggleFlatView switches between nested and flattened catalog rendering.
func (s *Session) ToggleFlatView() {
	s.flags.FlatView = !s.flags.FlatView
	s.Render(false)
}

// ─── Bookmarks & quick slots ─────────────────────────────────────────────

// ToggleBookmark flips the bookmark on a theme in the active scope.
func (s *Session) ToggleBookmark(name string) error {
	if name == "" {
		s.notify(LevelWarn, "nothing to bookmark here")
		return ErrNotFound
	}
	added, err := s.bookmarks.Toggle(name, s.scope)
	if err != nil {
		s.notify(LevelWarn, fmt.Sprintf("bookmark %s: %v", name, err))
		return err
	}
	if added {
		s.notify(LevelInfo, name+" bookmarked")
	} else {
		s.notify(LevelInfo, name+" unbookmarked")
	}
	s.persist()
	s.Render(false)
	return nil
}

// ToggleBookmarkAtCursor bookmarks the theme under the cursor.
func (s *Session) ToggleBookmarkAtCursor() error {
	return s.ToggleBookmark(s.View().ItemAt(s.Cursor()))
}

// AssignQuickSlot binds a digit slot to the theme under the cursor.
func (s *Session) AssignQuickSlot(slot string) error {
	name := s.View().ItemAt(s.Cursor())
	if name == "" {
		s.notify(LevelWarn, "nothing to assign here")
		return ErrNotFound
	}
	if err := s.slots.Assign(slot, name, s.scope); err != nil {
		s.notify(LevelWarn, fmt.Sprintf("assign slot %q: %v", slot, err))
		return err
	}
	s.notify(LevelInfo, fmt.Sprintf("slot %s → %s", slot, name))
	s.persist()
	return nil
}

// JumpToQuickSlot moves the cursor to the slot's theme. The theme may not
// be visible under current filters; that is reported, not fixed.
func (s *Session) JumpToQuickSlot(slot string) (string, error) {
	name, err := s.slots.Lookup(slot, s.scope)
	if err != nil {
		s.notify(LevelWarn, fmt.Sprintf("slot %q: %v", slot, err))
		return "", err
	}
	v := s.View()
	for i, l := range v.Lines {
		if l.Kind == LineItem && l.ItemName == name {
			s.SetCursor(i)
			return name, nil
		}
	}
	s.notify(LevelInfo, name+" is not visible in the current view")
	return name, nil
}

// ─── History ─────────────────────────────────────────────────────────────

// Undo steps back in selection history and re-applies that theme.
func (s *Session) Undo() error {
	name, err := s.hist.Undo()
	if err != nil {
		s.notify(LevelInfo, err.Error())
		return err
	}
	s.applyTheme(name, false)
	s.persist()
	s.Render(false)
	return nil
}

// Redo steps forward in selection history.
func (s *Session) Redo() error {
	name, err := s.hist.Redo()
	if err != nil {
		s.notify(LevelInfo, err.Error())
		return err
	}
	s.applyTheme(name, false)
	s.persist()
	s.Render(false)
	return nil
}

// JumpToHistory moves to a 1-based history position.
func (s *Session) JumpToHistory(position int) error {
	name, err := s.hist.Jump(position)
	if err != nil {
		s.notify(LevelWarn, err.Error())
		return err
	}
	s.applyTheme(name, false)
	s.persist()
	s.Render(false)
	return nil
}

// ShowHistoryStats surfaces a summary of the history stack.
func (s *Session) ShowHistoryStats() {
	st := s.hist.Stats()
	s.notify(LevelInfo, fmt.Sprintf("history: %d/%d entries, at position %d", st.Depth, st.MaxSize, st.Position))
}

// History exposes the stack for display (read-only use).
func (s *Session) History() *history.Stack { return s.hist }

// Bookmarks exposes the bookmark store for display (read-only use).
func (s *Session) Bookmarks() *marks.Bookmarks { return s.bookmarks }

// Scope returns the active profile scope.
func (s *Session) Scope() string { return s.scope }

// ─── Selection ───────────────────────────────────────────────────────────

// Select commits a theme: availability check, history push, usage record,
// apply, persist. With keepOpen the picker stays up for further browsing.
func (s *Session) Select(name string, keepOpen bool) error {
	if !s.opened {
		return ErrClosed
	}
	if name == "" {
		s.notify(LevelWarn, "no theme selected")
		return ErrNotFound
	}
	if !s.avail.IsAvailable(name) {
		s.notify(LevelWarn, s.aliases.Resolve(name)+" is not available")
		return ErrUnavailable
	}

	s.hist.Push(name)
	if s.recorder != nil {
		if err := s.recorder.Record(name); err != nil {
			log.Printf("usage record failed: %v", err)
		}
	}
	if s.usage != nil {
		s.usage[name]++
	}

	s.applyTheme(name, true)
	s.persist()

	if keepOpen {
		s.Render(false)
		return nil
	}
	s.Close(false)
	return nil
}

// SelectAtCursor commits the theme under the cursor.
func (s *Session) SelectAtCursor(keepOpen bool) error {
	return s.Select(s.View().ItemAt(s.Cursor()), keepOpen)
}

// applyTheme invokes the host apply callback. Failure is surfaced but does
// not roll back picker state.
func (s *Session) applyTheme(name string, persistent bool) {
	s.active = name
	if s.apply == nil {
		return
	}
	if err := s.apply(name, persistent); err != nil {
		s.notify(LevelError, fmt.Sprintf("apply %s: %v", s.aliases.Resolve(name), err))
		return
	}
	s.notify(LevelInfo, s.aliases.Resolve(name))
}

// Active returns the currently applied theme.
func (s *Session) Active() string { return s.active }

// Close tears the session down: pending debounced renders are cancelled so
// stale timers cannot touch a closed session, per-session flags reset, and
// state is saved. With revert the theme active at Open time is re-applied.
func (s *Session) Close(revert bool) {
	s.deb.Close()
	if revert && s.openedWith != "" && s.openedWith != s.active {
		s.applyTheme(s.openedWith, false)
	}
	s.persist()
	s.flags.SearchQuery = ""
	s.flags.SearchScope = ""
	s.flags.OnlyBookmarked = false
	s.flags.FlatView = false
	s.opened = false
}

// persist saves state fire-and-forget: a failed write is logged and
// reported, and in-memory state remains the source of truth.
func (s *Session) persist() {
	var collapsed []string
	for key, on := range s.flags.Collapsed {
		if on {
			collapsed = append(collapsed, key)
		}
	}
	st := store.State{
		History:    s.hist.Snapshot(),
		Bookmarks:  s.bookmarks.Snapshot(),
		QuickSlots: s.slots.Snapshot(),
		SortMode:   s.flags.SortMode.String(),
		Collapsed:  collapsed,
	}
	if err := s.store.Save(st); err != nil {
		log.Printf("state save failed: %v", err)
		s.notify(LevelWarn, "state save failed (will retry on next change)")
	}
}

// ─── Cursor movement dispatch ────────────────────────────────────────────

// MoveCursor steps the cursor with wraparound.
func (s *Session) MoveCursor(delta int) {
	s.SetCursor(Move(s.View(), s.Cursor(), delta))
}

// JumpNextHeader moves to the next group header.
func (s *Session) JumpNextHeader() {
	s.SetCursor(NextHeader(s.View(), s.Cursor()))
}

// JumpPrevHeader moves to the previous group header.
func (s *Session) JumpPrevHeader() {
	s.SetCursor(PrevHeader(s.View(), s.Cursor()))
}

// JumpNextBookmark finds the next bookmarked theme outside the Bookmarks
// section.
func (s *Session) JumpNextBookmark() {
	s.SetCursor(NextMarked(s.View(), s.Cursor(), BookmarksGroup, func(name string) bool {
		return s.bookmarks.Has(name, s.scope)
	}))
}

// JumpPrevBookmark finds the previous bookmarked theme outside the
// Bookmarks section.
func (s *Session) JumpPrevBookmark() {
	s.SetCursor(PrevMarked(s.View(), s.Cursor(), BookmarksGroup, func(name string) bool {
		return s.bookmarks.Has(name, s.scope)
	}))
}

// JumpNextRecent finds the next theme present in history, outside the
// Recent section.
func (s *Session) JumpNextRecent() {
	inHistory := s.historySet()
	s.SetCursor(NextMarked(s.View(), s.Cursor(), RecentGroup, func(name string) bool {
		return inHistory[name]
	}))
}

// JumpPrevRecent finds the previous theme present in history, outside the
// Recent section.
func (s *Session) JumpPrevRecent() {
	inHistory := s.historySet()
	s.SetCursor(PrevMarked(s.View(), s.Cursor(), RecentGroup, func(name string) bool {
		return inHistory[name]
	}))
}

// JumpEnterGroup moves from a header into its first child.
func (s *Session) JumpEnterGroup() {
	s.SetCursor(EnterGroup(s.View(), s.Cursor()))
}

// JumpExitGroup moves to the enclosing (or previous) header.
func (s *Session) JumpExitGroup() {
	s.SetCursor(ExitGroup(s.View(), s.Cursor()))
}

func (s *Session) historySet() map[string]bool {
	set := make(map[string]bool, s.hist.Len())
	for _, name := range s.hist.Entries() {
		set[name] = true
	}
	return set
}
