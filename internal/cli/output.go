package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"taskdeck/internal/domain"
)

// Output formats supported by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// Styles used by the plain-text renderers.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleOverdue = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	priorityStyles = map[domain.Priority]lipgloss.Style{
		domain.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		domain.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		domain.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}

	statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		domain.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		domain.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// writeStructured renders v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func renderPriority(p domain.Priority) string {
	if style, ok := priorityStyles[p]; ok {
		return style.Render(string(p))
	}
	return string(p)
}

func renderStatus(s domain.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(s.Display())
	}
	return string(s)
}

// formatDue renders a due date, flagging overdue tasks.
func formatDue(task *domain.Task, now time.Time) string {
	if task.DueDate == nil {
		return "-"
	}
	due := task.DueDate.Format("2006-01-02")
	if task.IsOverdue(now) {
		return styleOverdue.Render(due + " (overdue)")
	}
	return due
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return "[" + strings.Join(tags, ",") + "]"
}
