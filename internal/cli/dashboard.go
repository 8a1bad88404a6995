package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"taskdeck/internal/app"
	"taskdeck/internal/domain"
	"taskdeck/internal/usecase"
)

// newDashboardCommand creates the dashboard command.
func newDashboardCommand(c *app.Container) *cobra.Command {
	var opts struct {
		RecentLimit int
		Output      string
	}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show task statistics and highlights",
		Long: `Show the dashboard: totals by status, overdue and due-today
counts, the most recently updated tasks, and the lists that need
attention.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.DashboardUseCase().Execute(cmd.Context(), opts.RecentLimit)
			if err != nil {
				return err
			}

			if opts.Output != outputText {
				return writeStructured(cmd.OutOrStdout(), opts.Output, out)
			}
			printDashboard(cmd.OutOrStdout(), out, c.Clock)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.RecentLimit, "recent", usecase.DefaultRecentLimit, "How many recent tasks to show")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func printDashboard(w io.Writer, out *usecase.DashboardOutput, clock domain.Clock) {
	stats := out.Stats
	_, _ = fmt.Fprintln(w, styleTitle.Render("Tasks"))
	_, _ = fmt.Fprintf(w, "  Total: %d   Todo: %d   In progress: %d   Done: %d\n",
		stats.Total, stats.Todo, stats.InProgress, stats.Done)
	_, _ = fmt.Fprintf(w, "  Overdue: %s   Due today: %d   Due this week: %d\n",
		styleOverdue.Render(fmt.Sprintf("%d", stats.Overdue)), stats.DueToday, stats.DueThisWeek)

	if len(out.Overdue) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", styleTitle.Render("Overdue"))
		printTaskList(w, out.Overdue, clock)
	}
	if len(out.DueToday) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", styleTitle.Render("Due today"))
		printTaskList(w, out.DueToday, clock)
	}
	if len(out.Recent) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", styleTitle.Render("Recently updated"))
		printTaskList(w, out.Recent, clock)
	}
}
