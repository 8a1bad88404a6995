package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/app"
	"taskdeck/internal/domain"
	"taskdeck/internal/usecase"
)

// newListCommand creates the list command for listing tasks.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Statuses   []string
		Priorities []string
		AssignedTo string
		CreatedBy  string
		Search     string
		Tags       []string
		DueFrom    string
		DueTo      string
		SortBy     string
		SortOrder  string
		Page       int
		PageSize   int
		Output     string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display the task list.

Filter dimensions combine with AND; values within one dimension
combine with OR. Tags match when the task carries at least one of
the given tags. Date bounds are inclusive.

Examples:
  # All tasks
  taskdeck task list

  # Open work, most urgent first
  taskdeck task list --status TODO,IN_PROGRESS --sort-by priority --sort-order desc

  # Everything due this week for one assignee
  taskdeck task list --assigned-to 3 --due-to 2025-01-07

  # Tag and text search combined
  taskdeck task list --tag backend --search auth`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := buildFilter(opts.Statuses, opts.Priorities, opts.AssignedTo, opts.CreatedBy, opts.Search, opts.Tags, opts.DueFrom, opts.DueTo)
			if err != nil {
				return err
			}

			uc := c.FetchTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.FetchTasksInput{
				Filter:    *filter,
				SortBy:    domain.SortKey(opts.SortBy),
				SortOrder: domain.SortOrder(opts.SortOrder),
				Page:      opts.Page,
				PageSize:  opts.PageSize,
			})
			if err != nil {
				return err
			}

			if opts.Output != outputText {
				return writeStructured(cmd.OutOrStdout(), opts.Output, out.Tasks)
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks, c.Clock)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&opts.Statuses, "status", nil, "Filter by status (TODO, IN_PROGRESS, DONE)")
	cmd.Flags().StringSliceVar(&opts.Priorities, "priority", nil, "Filter by priority (LOW, MEDIUM, HIGH, URGENT)")
	cmd.Flags().StringVar(&opts.AssignedTo, "assigned-to", "", "Filter by assignee user ID")
	cmd.Flags().StringVar(&opts.CreatedBy, "created-by", "", "Filter by creator user ID")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Case-insensitive substring of title or description")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "Filter by tag (match any)")
	cmd.Flags().StringVar(&opts.DueFrom, "due-from", "", "Inclusive lower due date bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.DueTo, "due-to", "", "Inclusive upper due date bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "createdAt", "Sort key: title, priority, status, dueDate or createdAt")
	cmd.Flags().StringVar(&opts.SortOrder, "sort-order", "desc", "Sort order: asc or desc")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number (1-based)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Tasks per page")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}

// newShowCommand creates the show command for task details.
func newShowCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{ID: args[0]})
			if err != nil {
				return err
			}

			if output != outputText {
				return writeStructured(cmd.OutOrStdout(), output, out.Task)
			}
			printTaskDetail(cmd.OutOrStdout(), out.Task, c.Clock)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title          string
		Description    string
		Priority       string
		Status         string
		AssignedTo     string
		Due            string
		Tags           []string
		EstimatedHours float64
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		Long: `Create a new task.

Examples:
  # Minimal task
  taskdeck task add --title "Fix login redirect"

  # Fully specified
  taskdeck task add --title "Ship v2" --priority URGENT --due 2025-02-01 \
    --tag release --tag backend --estimate 8`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft := domain.TaskDraft{
				Title:       opts.Title,
				Description: opts.Description,
				Priority:    domain.Priority(opts.Priority),
				Status:      domain.Status(opts.Status),
				AssignedTo:  opts.AssignedTo,
				Tags:        opts.Tags,
			}
			if opts.Due != "" {
				due, err := time.Parse("2006-01-02", opts.Due)
				if err != nil {
					return fmt.Errorf("parse --due: %w", err)
				}
				draft.DueDate = &due
			}
			if cmd.Flags().Changed("estimate") {
				draft.EstimatedHours = &opts.EstimatedHours
			}

			out, err := c.CreateTaskUseCase().Execute(cmd.Context(), usecase.CreateTaskInput{Draft: draft})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%s: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Priority, "priority", "MEDIUM", "Priority: LOW, MEDIUM, HIGH or URGENT")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Initial status (default TODO)")
	cmd.Flags().StringVar(&opts.AssignedTo, "assigned-to", "", "Assignee user ID")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tags (can specify multiple)")
	cmd.Flags().Float64Var(&opts.EstimatedHours, "estimate", 0, "Estimated hours")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newEditCommand creates the edit command for updating tasks.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title          string
		Description    string
		Priority       string
		Status         string
		AssignedTo     string
		Due            string
		Tags           []string
		EstimatedHours float64
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a task",
		Long: `Update fields of an existing task. Only the given flags change;
everything else is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &opts.Title
			}
			if flags.Changed("body") {
				patch.Description = &opts.Description
			}
			if flags.Changed("priority") {
				p := domain.Priority(opts.Priority)
				patch.Priority = &p
			}
			if flags.Changed("status") {
				s := domain.Status(opts.Status)
				patch.Status = &s
			}
			if flags.Changed("assigned-to") {
				patch.AssignedTo = &opts.AssignedTo
			}
			if flags.Changed("due") {
				due, err := time.Parse("2006-01-02", opts.Due)
				if err != nil {
					return fmt.Errorf("parse --due: %w", err)
				}
				patch.DueDate = &due
			}
			if flags.Changed("tag") {
				patch.Tags = opts.Tags
			}
			if flags.Changed("estimate") {
				patch.EstimatedHours = &opts.EstimatedHours
			}

			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), usecase.UpdateTaskInput{
				ID:    args[0],
				Patch: patch,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status")
	cmd.Flags().StringVar(&opts.AssignedTo, "assigned-to", "", "New assignee user ID")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Replacement tag set")
	cmd.Flags().Float64Var(&opts.EstimatedHours, "estimate", 0, "New estimated hours")

	return cmd
}

// newDoneCommand creates the done command, shorthand for a status edit.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			done := domain.StatusDone
			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), usecase.UpdateTaskInput{
				ID:    args[0],
				Patch: domain.TaskPatch{Status: &done},
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Done: #%s %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}
}

// newRmCommand creates the rm command for deleting tasks.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{ID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%s\n", args[0])
			return nil
		},
	}
}

// newSearchCommand creates the search command.
func newSearchCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search tasks by title, description and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SearchTasksUseCase().Execute(cmd.Context(), usecase.SearchTasksInput{Query: args[0]})
			if err != nil {
				return err
			}

			if output != outputText {
				return writeStructured(cmd.OutOrStdout(), output, out.Tasks)
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks, c.Clock)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

// buildFilter converts CLI flag values into a domain filter.
func buildFilter(statuses, priorities []string, assignedTo, createdBy, search string, tags []string, dueFrom, dueTo string) (*domain.TaskFilter, error) {
	filter := domain.TaskFilter{
		AssignedTo: assignedTo,
		CreatedBy:  createdBy,
		SearchText: search,
		Tags:       tags,
	}

	for _, s := range statuses {
		status := domain.Status(strings.ToUpper(s))
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status: %s", s)
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, p := range priorities {
		priority := domain.Priority(strings.ToUpper(p))
		if !priority.IsValid() {
			return nil, fmt.Errorf("invalid priority: %s", p)
		}
		filter.Priorities = append(filter.Priorities, priority)
	}

	if dueFrom != "" {
		t, err := time.Parse("2006-01-02", dueFrom)
		if err != nil {
			return nil, fmt.Errorf("parse --due-from: %w", err)
		}
		filter.DueFrom = &t
	}
	if dueTo != "" {
		t, err := time.Parse("2006-01-02", dueTo)
		if err != nil {
			return nil, fmt.Errorf("parse --due-to: %w", err)
		}
		// Inclusive upper bound: cover the whole day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DueTo = &end
	}

	return &filter, nil
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, tasks []domain.Task, clock domain.Clock) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tDUE\tTAGS\tTITLE")

	now := clock.Now()
	for i := range tasks {
		task := &tasks[i]
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			renderStatus(task.Status),
			renderPriority(task.Priority),
			formatDue(task, now),
			formatTags(task.Tags),
			task.Title,
		)
	}
}

// printTaskDetail prints one task in long form.
func printTaskDetail(w io.Writer, task *domain.Task, clock domain.Clock) {
	_, _ = fmt.Fprintf(w, "%s %s\n", styleTitle.Render("#"+task.ID), styleTitle.Render(task.Title))
	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n\n", task.Description)
	}
	_, _ = fmt.Fprintf(w, "  Status:    %s\n", renderStatus(task.Status))
	_, _ = fmt.Fprintf(w, "  Priority:  %s\n", renderPriority(task.Priority))
	_, _ = fmt.Fprintf(w, "  Due:       %s\n", formatDue(task, clock.Now()))
	if task.AssignedTo != "" {
		_, _ = fmt.Fprintf(w, "  Assignee:  %s\n", task.AssignedTo)
	}
	_, _ = fmt.Fprintf(w, "  Tags:      %s\n", formatTags(task.Tags))
	if task.EstimatedHours != nil {
		_, _ = fmt.Fprintf(w, "  Estimate:  %.1fh\n", *task.EstimatedHours)
	}
	_, _ = fmt.Fprintf(w, "  Created:   %s\n", task.CreatedAt.Format("2006-01-02 15:04"))
	_, _ = fmt.Fprintf(w, "  Updated:   %s\n", task.UpdatedAt.Format("2006-01-02 15:04"))
	if task.CompletedAt != nil {
		_, _ = fmt.Fprintf(w, "  Completed: %s\n", task.CompletedAt.Format("2006-01-02 15:04"))
	}
}
