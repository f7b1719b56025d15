package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Captain-Vikram/To-Do-List/internal/query"
	"github.com/Captain-Vikram/To-Do-List/models"
)

// TaskTableOptions controls RenderTaskTable.
type TaskTableOptions struct {
	Now      time.Time
	Cursor   int // Row to highlight; -1 for none
	MaxWidth int
}

// TaskRow returns the table cells for one task.
func TaskRow(t models.Task, now time.Time) []string {
	due := FormatDate(t.DueDate)
	if query.IsOverdue(t, now) {
		due += " !"
	}
	return []string{
		StatusIcon(t.Status),
		t.Title,
		PriorityLabel(t.Priority),
		StatusLabel(t.Status),
		due,
	}
}

// RenderTaskTable renders tasks as a table. Completed tasks are dimmed and
// overdue tasks are drawn in the error colour.
func RenderTaskTable(th Theme, tasks []models.Task, opts TaskTableOptions) string {
	if len(tasks) == 0 {
		return th.Subtle.Render(" No tasks to show.") + "\n"
	}
	maxWidth := opts.MaxWidth
	if maxWidth == 0 {
		maxWidth = 40
	}
	table := &Table{
		Headers:  []string{" ", "Title", "Priority", "Status", "Due"},
		MaxWidth: maxWidth,
	}
	for _, t := range tasks {
		table.Rows = append(table.Rows, TaskRow(t, opts.Now))
	}
	table.RowStyle = func(r int) (lipgloss.Style, bool) {
		t := tasks[r]
		var s lipgloss.Style
		switch {
		case t.Completed():
			s = th.Subtle.Strikethrough(true)
		case query.IsOverdue(t, opts.Now):
			s = th.Error
		case t.Priority == models.PriorityHigh:
			s = th.Warning
		default:
			s = th.Text
		}
		if r == opts.Cursor {
			s = s.Inherit(th.Selected)
		}
		return s, true
	}
	return table.Render(th)
}

// RenderGroups renders tasks grouped by status with a section title each.
// cursor indexes into the flattened group order.
func RenderGroups(th Theme, groups []query.Group, opts TaskTableOptions) string {
	var sb strings.Builder
	offset := 0
	for _, g := range groups {
		sb.WriteString(th.SectionTitle.Render(fmt.Sprintf("%s %s (%d)", StatusIcon(g.Status), StatusLabel(g.Status), len(g.Tasks))))
		sb.WriteString("\n")
		groupOpts := opts
		groupOpts.Cursor = opts.Cursor - offset
		sb.WriteString(RenderTaskTable(th, g.Tasks, groupOpts))
		sb.WriteString("\n")
		offset += len(g.Tasks)
	}
	return sb.String()
}

// RenderStats renders the statistics header line.
func RenderStats(th Theme, s query.Statistics) string {
	parts := []string{
		th.Title.Render(fmt.Sprintf("Total %d", s.Total)),
		th.Subtle.Render(fmt.Sprintf("%s Pending %d", StatusIcon(models.StatusPending), s.Pending)),
		th.Warning.Render(fmt.Sprintf("%s In Progress %d", StatusIcon(models.StatusInProgress), s.InProgress)),
		th.Success.Render(fmt.Sprintf("%s Completed %d", StatusIcon(models.StatusCompleted), s.Completed)),
	}
	return strings.Join(parts, th.Subtle.Render("  •  "))
}

// RenderQuery describes the active query state in one line.
func RenderQuery(th Theme, p query.Params) string {
	arrow := "↓"
	if p.Order == query.Ascending {
		arrow = "↑"
	}
	parts := []string{
		"status: " + Label(string(p.Status)),
		"priority: " + Label(string(p.Priority)),
		fmt.Sprintf("sort: %s %s", SortKeyLabel(p.SortBy), arrow),
	}
	if p.Search != "" {
		parts = append([]string{fmt.Sprintf("search: %q", p.Search)}, parts...)
	}
	return th.Subtle.Render(strings.Join(parts, " | "))
}

// Panel represents a styled panel with optional title and content.
type Panel struct {
	Title       string
	Content     string
	BorderColor lipgloss.Color
	Width       int
}

// NewPanel creates a new panel bordered in the theme's secondary colour.
func NewPanel(th Theme, title, content string) *Panel {
	return &Panel{
		Title:       title,
		Content:     content,
		BorderColor: th.Palette.Secondary,
	}
}

// WithBorderColor sets the border color and returns the panel.
func (p *Panel) WithBorderColor(color lipgloss.Color) *Panel {
	p.BorderColor = color
	return p
}

// WithWidth sets the panel width and returns the panel.
func (p *Panel) WithWidth(width int) *Panel {
	p.Width = width
	return p
}

// Render returns the styled panel as a string.
func (p *Panel) Render(th Theme) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Padding(0, 1)

	if p.Width > 0 {
		style = style.Width(p.Width)
	}

	content := p.Content
	if p.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Palette.Primary)
		content = titleStyle.Render(p.Title) + "\n" + p.Content
	}

	return style.Render(content)
}

// RenderErrorPanel renders a panel with error styling (red border).
func RenderErrorPanel(th Theme, title, content string) string {
	return NewPanel(th, title, content).WithBorderColor(th.Palette.Error).Render(th)
}

// RenderSuccessPanel renders a panel with success styling (green border).
func RenderSuccessPanel(th Theme, title, content string) string {
	return NewPanel(th, title, content).WithBorderColor(th.Palette.Success).Render(th)
}
