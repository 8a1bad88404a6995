// Package cli provides the command-line interface for taskdeck.
package cli

import (
	"github.com/spf13/cobra"

	"taskdeck/internal/app"
	"taskdeck/internal/tui"
)

// Command group IDs.
const (
	groupAuth = "auth"
	groupTask = "task"
	groupView = "view"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = tui.Run

// NewRootCommand creates the root command for taskdeck.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskdeck",
		Short: "Task management from the terminal",
		Long: `taskdeck is a task management CLI. It keeps a local session,
talks to a REST backend, and offers both scriptable commands and
an interactive TUI.

Run "taskdeck serve" to start the built-in demo backend, then
"taskdeck login --email admin@example.com" to sign in.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Default: launch the interactive TUI
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupAuth, Title: "Authentication:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupView, Title: "Views:"},
	)

	// Authentication commands
	loginCmd := newLoginCommand(c)
	loginCmd.GroupID = groupAuth

	registerCmd := newRegisterCommand(c)
	registerCmd.GroupID = groupAuth

	logoutCmd := newLogoutCommand(c)
	logoutCmd.GroupID = groupAuth

	whoamiCmd := newWhoamiCommand(c)
	whoamiCmd.GroupID = groupAuth

	refreshCmd := newRefreshCommand(c)
	refreshCmd.GroupID = groupAuth

	// Task management commands live under one parent
	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTask

	// View commands
	dashboardCmd := newDashboardCommand(c)
	dashboardCmd.GroupID = groupView

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupView

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupView

	// Add subcommands
	root.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		whoamiCmd,
		refreshCmd,
		taskCmd,
		dashboardCmd,
		tuiCmd,
		serveCmd,
	)

	return root
}

// newTaskCommand groups the task CRUD commands under one parent.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(
		newListCommand(c),
		newShowCommand(c),
		newAddCommand(c),
		newEditCommand(c),
		newDoneCommand(c),
		newRmCommand(c),
		newSearchCommand(c),
	)
	return cmd
}

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same as running `taskdeck` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for managing tasks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
