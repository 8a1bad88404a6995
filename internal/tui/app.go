// Package tui provides the interactive task list built on bubbletea.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/app"
	"taskdeck/internal/domain"
	"taskdeck/internal/usecase"
)

var (
	styleStatus = lipgloss.NewStyle().Faint(true)
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// taskItem adapts a domain.Task to the bubbles list item interface.
type taskItem struct {
	task domain.Task
}

func (i taskItem) Title() string {
	return fmt.Sprintf("#%s %s", i.task.ID, i.task.Title)
}

func (i taskItem) Description() string {
	due := ""
	if i.task.DueDate != nil {
		due = "  due " + i.task.DueDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%s  %s%s", i.task.Status.Display(), i.task.Priority, due)
}

func (i taskItem) FilterValue() string {
	return i.task.Title + " " + i.task.Description
}

// Model is the TUI application model.
type Model struct {
	container *app.Container
	keys      KeyMap
	list      list.Model
	spinner   spinner.Model
	errMsg    string
	loading   bool
}

// NewModel creates the TUI model.
func NewModel(container *app.Container) Model {
	delegate := list.NewDefaultDelegate()
	taskList := list.New(nil, delegate, 0, 0)
	taskList.Title = "taskdeck"
	taskList.SetShowStatusBar(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		container: container,
		keys:      DefaultKeyMap(),
		list:      taskList,
		spinner:   sp,
		loading:   true,
	}
}

// Init starts the spinner and kicks off the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchTasks())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgTasksLoaded:
		m.loading = false
		m.errMsg = ""
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = taskItem{task: task}
		}
		return m, m.list.SetItems(items)

	case MsgTaskUpdated:
		m.errMsg = ""
		for i, item := range m.list.Items() {
			if ti, ok := item.(taskItem); ok && ti.task.ID == msg.Task.ID {
				return m, m.list.SetItem(i, taskItem{task: *msg.Task})
			}
		}
		return m, nil

	case MsgTaskDeleted:
		m.errMsg = ""
		for i, item := range m.list.Items() {
			if ti, ok := item.(taskItem); ok && ti.task.ID == msg.ID {
				m.list.RemoveItem(i)
				break
			}
		}
		return m, nil

	case MsgError:
		m.loading = false
		m.errMsg = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		// Let the list's filter input consume keys first.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchTasks())

		case key.Matches(msg, m.keys.Done):
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				return m, m.markDone(item.task.ID)
			}

		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				return m, m.deleteTask(item.task.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list and the status line.
func (m Model) View() string {
	status := ""
	switch {
	case m.loading:
		status = styleStatus.Render(m.spinner.View() + " loading…")
	case m.errMsg != "":
		status = styleError.Render(m.errMsg)
	default:
		status = styleStatus.Render("d done · x delete · r refresh · / filter · q quit")
	}
	return m.list.View() + "\n" + status
}

func (m Model) fetchTasks() tea.Cmd {
	uc := m.container.FetchTasksUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.FetchTasksInput{
			SortBy:    domain.SortByCreatedAt,
			SortOrder: domain.SortDesc,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Tasks: out.Tasks}
	}
}

func (m Model) markDone(id string) tea.Cmd {
	uc := m.container.UpdateTaskUseCase()
	return func() tea.Msg {
		done := domain.StatusDone
		out, err := uc.Execute(context.Background(), usecase.UpdateTaskInput{
			ID:    id,
			Patch: domain.TaskPatch{Status: &done},
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskUpdated{Task: out.Task}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	uc := m.container.DeleteTaskUseCase()
	return func() tea.Msg {
		if err := uc.Execute(context.Background(), usecase.DeleteTaskInput{ID: id}); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskDeleted{ID: id}
	}
}

// Run launches the TUI.
func Run(container *app.Container) error {
	program := tea.NewProgram(NewModel(container), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
