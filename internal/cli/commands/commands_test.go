// Package commands_test provides tests for CLI command creation.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRenderCommand(t *testing.T) {
	cmd := NewRenderCommand()

	assert.Equal(t, "render [file...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist (pretty/indent/jobs are global flags on root, not local)
	flags := []string{"expr", "watch"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewTypesCommand(t *testing.T) {
	cmd := NewTypesCommand()

	assert.Equal(t, "types", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Note: --output flag is a global persistent flag on root command, not local to types
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewDoctorCommand(t *testing.T) {
	cmd := NewDoctorCommand()

	assert.Equal(t, "doctor", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	assert.NotNil(t, cmd.Flags().Lookup("force"), "flag %q should exist", "force")
}
