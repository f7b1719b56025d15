// Package tui is the interactive terminal view of the task store.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Captain-Vikram/To-Do-List/internal/logger"
	"github.com/Captain-Vikram/To-Do-List/internal/query"
	"github.com/Captain-Vikram/To-Do-List/internal/ui"
	"github.com/Captain-Vikram/To-Do-List/models"
	"github.com/Captain-Vikram/To-Do-List/store"
)

const defaultToastTTL = 3 * time.Second

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
	modeConfirm
)

type confirmAction int

const (
	confirmDelete confirmAction = iota + 1
	confirmClearCompleted
)

type pendingConfirm struct {
	action confirmAction
	id     string
	prompt string
}

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

type toast struct {
	kind toastKind
	text string
	seq  int
}

type (
	toastExpiredMsg struct{ seq int }
	watchStartedMsg struct{ ch <-chan string }
	themeChangedMsg struct {
		value string
		ch    <-chan string
	}
	watchFailedMsg struct{ err error }
)

// Options configures a Model.
type Options struct {
	// Watcher, when set, reloads the appearance when another process
	// changes the stored theme.
	Watcher  store.PreferenceWatcher
	Logger   *slog.Logger
	Now      func() time.Time
	ToastTTL time.Duration
}

// Model is the Bubble Tea model for the task list.
type Model struct {
	ctx     context.Context
	store   store.TaskStore
	watcher store.PreferenceWatcher
	log     *slog.Logger
	now     func() time.Time
	ttl     time.Duration

	mode    mode
	cursor  int
	grouped bool
	form    *taskForm
	search  textinput.Model
	confirm *pendingConfirm
	toast   toast
	width   int
}

// New builds the model. The store's dark mode should already be initialised.
func New(ctx context.Context, s store.TaskStore, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ToastTTL <= 0 {
		opts.ToastTTL = defaultToastTTL
	}

	search := textinput.New()
	search.Placeholder = "Search title or description"
	search.Prompt = "/ "
	search.Width = 40

	return Model{
		ctx:     ctx,
		store:   s,
		watcher: opts.Watcher,
		log:     opts.Logger,
		now:     opts.Now,
		ttl:     opts.ToastTTL,
		search:  search,
		width:   80,
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, s store.TaskStore, opts Options) error {
	p := tea.NewProgram(New(ctx, s, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.startWatch
}

func (m Model) startWatch() tea.Msg {
	ch, err := m.watcher.Watch(m.ctx, store.ThemeKey)
	if err != nil {
		return watchFailedMsg{err: err}
	}
	return watchStartedMsg{ch: ch}
}

func waitForTheme(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return themeChangedMsg{value: v, ch: ch}
	}
}

// rows returns the tasks in display order; the cursor indexes this slice.
func (m Model) rows() []models.Task {
	visible := m.store.Visible()
	if !m.grouped {
		return visible
	}
	out := make([]models.Task, 0, len(visible))
	for _, g := range query.GroupByStatus(visible) {
		out = append(out, g.Tasks...)
	}
	return out
}

func (m Model) current() (models.Task, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return models.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
}

func (m *Model) notify(kind toastKind, format string, args ...any) tea.Cmd {
	m.toast = toast{kind: kind, text: fmt.Sprintf(format, args...), seq: m.toast.seq + 1}
	seq := m.toast.seq
	return tea.Tick(m.ttl, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m Model) record(action string) {
	logger.SetLastAction(action, len(m.store.Tasks()))
	m.log.Debug("tui action", "action", action)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.search.Width = max(20, msg.Width-10)
		return m, nil

	case toastExpiredMsg:
		if msg.seq == m.toast.seq {
			m.toast.text = ""
		}
		return m, nil

	case watchStartedMsg:
		return m, waitForTheme(msg.ch)

	case watchFailedMsg:
		m.log.Debug("theme watch unavailable", "error", msg.err)
		return m, nil

	case themeChangedMsg:
		if err := m.store.InitializeDarkMode(m.ctx); err != nil {
			m.log.Warn("reload theme", "error", err)
		}
		if msg.ch == nil {
			return m, nil
		}
		return m, waitForTheme(msg.ch)

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.rows()) - 1

	case "a":
		m.record("open add form")
		m.form = newTaskForm("", models.NewDraft())
		m.mode = modeForm
		return m, textinput.Blink

	case "e", "enter":
		t, ok := m.current()
		if !ok {
			return m, m.notify(toastInfo, "No task selected")
		}
		m.record("open edit form " + t.ID)
		m.form = newTaskForm(t.ID, t.Draft())
		m.mode = modeForm
		return m, textinput.Blink

	case "d":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		m.confirm = &pendingConfirm{action: confirmDelete, id: t.ID, prompt: fmt.Sprintf("Delete %q?", t.Title)}
		m.mode = modeConfirm

	case " ":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		next := t.Status.Next()
		m.record("cycle status " + t.ID)
		if err := m.store.SetTaskStatus(t.ID, next); err != nil {
			m.log.Debug("status change ignored", "id", t.ID, "error", err)
			return m, nil
		}
		return m, m.notify(toastSuccess, "%q is now %s", t.Title, ui.StatusLabel(next))

	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.store.Query().Search)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case "s":
		m.store.SetStatusFilter(m.store.Query().Status.Next())
	case "p":
		m.store.SetPriorityFilter(m.store.Query().Priority.Next())
	case "o":
		m.store.SetSortBy(m.store.Query().SortBy.Next())
	case "O":
		m.store.ToggleSortOrder()
	case "g":
		m.grouped = !m.grouped
	case "r":
		m.record("reset filters")
		m.store.ResetFilters()
		m.clampCursor()
		return m, m.notify(toastInfo, "Filters reset")

	case "t":
		m.record("toggle theme")
		dark, err := m.store.ToggleDarkMode(m.ctx)
		if err != nil {
			m.log.Warn("persist theme", "error", err)
			return m, m.notify(toastError, "Theme changed but could not be saved: %v", err)
		}
		name := "light"
		if dark {
			name = "dark"
		}
		return m, m.notify(toastInfo, "Switched to %s mode", name)

	case "C":
		m.record("mark all completed")
		n := m.store.MarkAllCompleted()
		return m, m.notify(toastSuccess, "Marked %d %s completed", n, plural(n, "task", "tasks"))

	case "X":
		completed := m.store.Statistics().Completed
		if completed == 0 {
			return m, m.notify(toastInfo, "No completed tasks to clear")
		}
		m.confirm = &pendingConfirm{
			action: confirmClearCompleted,
			prompt: fmt.Sprintf("Remove %d completed %s?", completed, plural(completed, "task", "tasks")),
		}
		m.mode = modeConfirm
	}

	m.clampCursor()
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.form = nil
		m.mode = modeList
		return m, m.notify(toastInfo, "Cancelled")
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	cmd, submit := m.form.update(msg)
	if !submit {
		return m, cmd
	}

	d := m.form.draft()
	res := models.ValidateDraft(d)
	if !res.Valid {
		m.form.violations = res.Violations
		return m, nil
	}
	d = d.Normalized()

	form := m.form
	m.form = nil
	m.mode = modeList

	if !form.editing() {
		m.record("add task")
		t := m.store.AddTask(d)
		m.selectTask(t.ID)
		return m, m.notify(toastSuccess, "Added %q", t.Title)
	}

	m.record("edit task " + form.editingID)
	if err := m.store.EditTask(form.editingID, d); err != nil {
		m.log.Debug("edit ignored", "id", form.editingID, "error", err)
		m.clampCursor()
		return m, nil
	}
	return m, m.notify(toastSuccess, "Updated %q", d.Title)
}

func (m *Model) selectTask(id string) {
	for i, t := range m.rows() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.search.Blur()
		m.mode = modeList
		m.clampCursor()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.store.SetSearchQuery(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm
	switch msg.String() {
	case "y", "Y", "enter":
	case "n", "N", "esc":
		m.confirm = nil
		m.mode = modeList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}

	m.confirm = nil
	m.mode = modeList
	var cmd tea.Cmd
	switch c.action {
	case confirmDelete:
		m.record("delete task " + c.id)
		if err := m.store.DeleteTask(c.id); err != nil {
			m.log.Debug("delete ignored", "id", c.id, "error", err)
		} else {
			cmd = m.notify(toastSuccess, "Task deleted")
		}
	case confirmClearCompleted:
		m.record("clear completed")
		n := m.store.ClearCompleted()
		cmd = m.notify(toastSuccess, "Removed %d completed %s", n, plural(n, "task", "tasks"))
	}
	m.clampCursor()
	return m, cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func (m Model) View() string {
	snap := m.store.Snapshot()
	th := ui.NewTheme(snap.DarkMode)
	now := m.now()

	var b strings.Builder
	appearance := "☀ light"
	if snap.DarkMode {
		appearance = "☾ dark"
	}
	b.WriteString(th.Header.Render("Todo") + th.Subtle.Render(appearance))
	b.WriteString("\n")
	b.WriteString(ui.RenderStats(th, snap.Statistics))
	b.WriteString("\n")
	b.WriteString(ui.RenderQuery(th, snap.Query))
	b.WriteString("\n\n")

	cursor := m.cursor
	if m.mode != modeList {
		cursor = -1
	}
	opts := ui.TaskTableOptions{Now: now, Cursor: cursor, MaxWidth: max(20, m.width/3)}
	switch {
	case len(snap.Tasks) == 0:
		b.WriteString(th.Subtle.Render(" No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	case m.grouped:
		b.WriteString(ui.RenderGroups(th, query.GroupByStatus(snap.Visible), opts))
	default:
		b.WriteString(ui.RenderTaskTable(th, snap.Visible, opts))
	}

	switch m.mode {
	case modeForm:
		b.WriteString("\n")
		b.WriteString(m.form.view(th))
		b.WriteString("\n")
	case modeSearch:
		b.WriteString("\n")
		b.WriteString(th.FocusedBox.Render(m.search.View()))
		b.WriteString("\n")
	case modeConfirm:
		b.WriteString("\n")
		b.WriteString(th.DialogBox.Render(m.confirm.prompt + "\n\n" + th.Subtle.Render("y confirm • n cancel")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.toast.text != "" {
		style := th.Primary
		switch m.toast.kind {
		case toastSuccess:
			style = th.Success
		case toastError:
			style = th.Error
		}
		b.WriteString(style.Render(m.toast.text))
	}
	b.WriteString("\n")
	if m.mode == modeList {
		b.WriteString(th.Subtle.Render(helpLine))
	}
	return b.String()
}

const helpLine = "a add • e edit • d delete • space status • / search • s/p filter • o/O sort • g group • t theme • C complete all • X clear done • r reset • q quit"
