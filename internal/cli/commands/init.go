package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Scaffolding written by irkit init.
const (
	initConfig = `# irkit configuration
# Values here are overridden by IRKIT_* environment variables and flags.

# output: text | json
output: text

# pretty: render containers across multiple lines
pretty: false

# indent: indent width for pretty rendering
indent: 2

# jobs: maximum number of files rendered in parallel
jobs: 4
`

	initModel = `"""Example graph: exported globals become render roots."""

_INPUT = (3, 224, 224)

def _conv(name, channels):
    return {"name": name, "args": [channels, _INPUT, None]}

backbone = [_conv("conv1", 64), _conv("conv2", 128)]
classes = 1000
`

	initGraph = `# Example network description.
name: resnet18
layers:
  - {op: conv2d, kernel: [7, 7], stride: 2}
  - {op: maxpool, kernel: [3, 3]}
pretrained: true
`
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new irkit project",
		Long: `Initialize a new irkit project with a configuration file and example
sources.

This creates:
  - irkit.yaml   configuration with the default settings
  - model.star   example Starlark graph
  - graph.yaml   example YAML document`,
		Example: `  # Initialize in the current directory
  irkit init

  # Initialize in a new directory
  irkit init my-graphs

  # Overwrite an existing configuration
  irkit init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "irkit.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New("irkit.yaml already exists. Use --force to overwrite")
	}

	files := []struct {
		name    string
		content string
	}{
		{"irkit.yaml", initConfig},
		{"model.star", initModel},
		{"graph.yaml", initGraph},
	}
	out := cmd.OutOrStdout()
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		_, _ = fmt.Fprintf(out, "  created %s\n", path)
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "irkit project initialized!")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Next steps:")
	_, _ = fmt.Fprintln(out, "  irkit render model.star   Render the example graph")
	_, _ = fmt.Fprintln(out, "  irkit render graph.yaml   Render the YAML document")
	_, _ = fmt.Fprintln(out, "  irkit repl                Evaluate expressions interactively")

	return nil
}
