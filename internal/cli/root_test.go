package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/app"
)

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	// Setup
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(_ *app.Container) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{})

	// Execute
	err := root.Execute()

	// Assert
	assert.NoError(t, err)
	assert.True(t, called, "launchTUIFunc should be called when no arguments are provided")
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	// Setup
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(_ *app.Container) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	// Execute
	err := root.Execute()

	// Assert
	assert.NoError(t, err)
	assert.False(t, called, "launchTUIFunc should NOT be called when --help is provided")
	assert.Contains(t, out.String(), "Authentication:")
	assert.Contains(t, out.String(), "Task Management:")
}

func TestNewRootCommand_TUISubcommand_LaunchesTUI(t *testing.T) {
	// Setup
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(_ *app.Container) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{"tui"})

	// Execute
	err := root.Execute()

	// Assert
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestNewRootCommand_Version(t *testing.T) {
	// Setup
	root := NewRootCommand(nil, "1.2.3")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	// Execute
	err := root.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1.2.3")
}

func TestNewRootCommand_HasAllSubcommands(t *testing.T) {
	// Setup
	root := NewRootCommand(nil, "test-version")

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	// Assert
	for _, want := range []string{"login", "register", "logout", "whoami", "refresh", "task", "dashboard", "tui", "serve"} {
		assert.True(t, names[want], "missing subcommand: %s", want)
	}
}
