package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Captain-Vikram/To-Do-List/internal/ui"
	"github.com/Captain-Vikram/To-Do-List/models"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldDueDate
	fieldPriority
	fieldStatus
	fieldCount
)

var fieldLabels = [...]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldDueDate:     "Due date (YYYY-MM-DD)",
	fieldPriority:    "Priority",
	fieldStatus:      "Status",
}

// taskForm edits a Draft. editingID is empty when adding.
type taskForm struct {
	editingID   string
	title       textinput.Model
	description textarea.Model
	due         textinput.Model
	priority    models.TaskPriority
	status      models.TaskStatus
	focus       formField
	violations  []models.Violation
}

func newTaskForm(id string, d models.Draft) *taskForm {
	title := textinput.New()
	title.Placeholder = "What needs to be done?"
	title.CharLimit = models.MaxTitleLength + 20
	title.Width = 50
	title.SetValue(d.Title)

	desc := textarea.New()
	desc.Placeholder = "Optional details"
	desc.CharLimit = models.MaxDescriptionLength + 50
	desc.ShowLineNumbers = false
	desc.SetWidth(52)
	desc.SetHeight(3)
	desc.SetValue(d.Description)

	due := textinput.New()
	due.Placeholder = "2006-01-02"
	due.CharLimit = 10
	due.Width = 12
	due.SetValue(d.DueDate)

	f := &taskForm{
		editingID:   id,
		title:       title,
		description: desc,
		due:         due,
		priority:    d.Priority,
		status:      d.Status,
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *taskForm) editing() bool { return f.editingID != "" }

func (f *taskForm) draft() models.Draft {
	return models.Draft{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		DueDate:     f.due.Value(),
		Priority:    f.priority,
		Status:      f.status,
	}
}

func (f *taskForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.due.Blur()
	switch field {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	case fieldDueDate:
		return f.due.Focus()
	}
	return nil
}

func (f *taskForm) move(delta int) tea.Cmd {
	next := (int(f.focus) + delta + int(fieldCount)) % int(fieldCount)
	return f.setFocus(formField(next))
}

// update handles a key inside the form. submit is true when the user asked
// to save.
func (f *taskForm) update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	switch msg.String() {
	case "ctrl+s":
		return nil, true
	case "tab", "down":
		if f.focus != fieldDescription || msg.String() == "tab" {
			return f.move(1), false
		}
	case "shift+tab", "up":
		if f.focus != fieldDescription || msg.String() == "shift+tab" {
			return f.move(-1), false
		}
	case "enter":
		if f.focus != fieldDescription {
			return nil, true
		}
	}

	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldDueDate:
		f.due, cmd = f.due.Update(msg)
	case fieldPriority:
		f.priority = cyclePriority(f.priority, msg.String())
	case fieldStatus:
		f.status = cycleStatus(f.status, msg.String())
	}
	return cmd, false
}

func cyclePriority(p models.TaskPriority, key string) models.TaskPriority {
	n := len(models.Priorities())
	switch key {
	case "right", "l", " ":
		return models.TaskPriority((int(p) + 1) % n)
	case "left", "h":
		return models.TaskPriority((int(p) + n - 1) % n)
	}
	return p
}

func cycleStatus(s models.TaskStatus, key string) models.TaskStatus {
	n := len(models.Statuses())
	switch key {
	case "right", "l", " ":
		return s.Next()
	case "left", "h":
		return models.TaskStatus((int(s) + n - 1) % n)
	}
	return s
}

func (f *taskForm) violationFor(field string) string {
	var msgs []string
	for _, v := range f.violations {
		if v.Field == field {
			msgs = append(msgs, v.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

func (f *taskForm) view(th ui.Theme) string {
	var b strings.Builder
	heading := "New task"
	if f.editing() {
		heading = "Edit task"
	}
	b.WriteString(th.SectionTitle.Render(heading))
	b.WriteString("\n\n")

	row := func(field formField, body, violationField string) {
		label := th.Subtle.Render(fieldLabels[field])
		if f.focus == field {
			label = th.Primary.Render("› " + fieldLabels[field])
		}
		b.WriteString(label + "\n" + body + "\n")
		if msg := f.violationFor(violationField); msg != "" {
			b.WriteString(th.Error.Render("  " + msg))
			b.WriteString("\n")
		}
	}

	row(fieldTitle, f.title.View(), "title")
	row(fieldDescription, f.description.View(), "description")
	row(fieldDueDate, f.due.View(), "dueDate")
	row(fieldPriority, choice(th, models.Priorities(), f.priority, ui.PriorityLabel), "priority")
	row(fieldStatus, choice(th, models.Statuses(), f.status, ui.StatusLabel), "status")

	b.WriteString("\n")
	b.WriteString(th.Subtle.Render("tab/shift+tab move • ←/→ change • enter/ctrl+s save • esc cancel"))

	box := th.InputBox
	if len(f.violations) > 0 {
		box = box.BorderForeground(th.Palette.Error)
	}
	return box.Render(b.String())
}

func choice[T comparable](th ui.Theme, all []T, current T, label func(T) string) string {
	parts := make([]string, 0, len(all))
	for _, v := range all {
		if v == current {
			parts = append(parts, th.Selected.Render(fmt.Sprintf("[%s]", label(v))))
		} else {
			parts = append(parts, th.Subtle.Render(" "+label(v)+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
